package weather

// Observation is the current-conditions payload for a location.
type Observation struct {
	TempC     float64 `json:"temp_c"`
	Condition struct {
		Text string `json:"text"`
	} `json:"condition"`
}

// Response is the forecast API response body.
type Response struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Current Observation `json:"current"`
}
