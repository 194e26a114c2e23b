package models

import "encoding/json"

type FormattedDeparture struct {
	Destination      string `json:"destination"`
	TrainType        string `json:"trainType"`
	PlannedDeparture string `json:"plannedDeparture"`
	ActualDeparture  string `json:"actualDeparture"`
	// Delay in whole minutes; negative when the train leaves early.
	Delay         int    `json:"delay"`
	Track         string `json:"track"`
	TrackChanged  bool   `json:"trackChanged"`
	Cancelled     bool   `json:"cancelled"`
	CrowdForecast string `json:"crowdForecast"`
	Operator      string `json:"operator"`
	Status        string `json:"status"`
}

// DeparturesDiagnostic replaces the departures list when the upstream payload
// has no usable departures array.
type DeparturesDiagnostic struct {
	Error       string          `json:"error"`
	Station     string          `json:"station"`
	Message     string          `json:"message"`
	RawResponse json.RawMessage `json:"rawResponse"`
}
