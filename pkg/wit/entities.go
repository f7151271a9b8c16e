package wit

import "fmt"

// FirstEntityValue returns the first candidate's value for the given entity
// type, unwrapping a nested {"value": ...} object when present. The second
// return is false when the entity type is missing, has no candidates, or its
// first value is empty.
func FirstEntityValue(entities Entities, entity string) (string, bool) {
	candidates, ok := entities[entity]
	if !ok || len(candidates) == 0 {
		return "", false
	}

	val := candidates[0].Value
	if nested, ok := val.(map[string]interface{}); ok {
		val = nested["value"]
	}

	switch v := val.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	case float64:
		if v == 0 {
			return "", false
		}
		return fmt.Sprintf("%v", v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
