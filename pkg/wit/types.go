package wit

// Converse step types returned by the NLU backend.
const (
	StepTypeAction = "action"
	StepTypeMsg    = "msg"
	StepTypeStop   = "stop"
)

// ConverseResponse is one planning step of an in-flight turn.
type ConverseResponse struct {
	Type       string   `json:"type"`
	Msg        string   `json:"msg,omitempty"`
	Action     string   `json:"action,omitempty"`
	Entities   Entities `json:"entities,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
}

// Entities maps an entity type to its ordered candidate matches.
type Entities map[string][]Entity

// Entity is a single candidate match for an entity type. Value may be a
// scalar or a nested {"value": ...} object depending on the entity kind.
type Entity struct {
	Value      interface{} `json:"value"`
	Confidence float64     `json:"confidence,omitempty"`
}
