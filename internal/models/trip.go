package models

// FormattedTrip is the compact form of one journey option.
type FormattedTrip struct {
	PlannedDeparture string         `json:"plannedDeparture"`
	ActualDeparture  string         `json:"actualDeparture"`
	PlannedArrival   string         `json:"plannedArrival"`
	ActualArrival    string         `json:"actualArrival"`
	Duration         string         `json:"duration"`
	Transfers        int            `json:"transfers"`
	Optimal          bool           `json:"optimal"`
	Punctuality      float64        `json:"punctuality"`
	Price            string         `json:"price"`
	Legs             []FormattedLeg `json:"legs"`
}

type FormattedLeg struct {
	From             string `json:"from"`
	To               string `json:"to"`
	Transport        string `json:"transport"`
	DepartureTrack   string `json:"departureTrack,omitempty"`
	ArrivalTrack     string `json:"arrivalTrack,omitempty"`
	PlannedDeparture string `json:"plannedDeparture,omitempty"`
	ActualDeparture  string `json:"actualDeparture,omitempty"`
	PlannedArrival   string `json:"plannedArrival,omitempty"`
	ActualArrival    string `json:"actualArrival,omitempty"`
	Cancelled        bool   `json:"cancelled"`
	CrowdForecast    string `json:"crowdForecast"`
}
