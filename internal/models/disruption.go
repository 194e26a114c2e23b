package models

type FormattedDisruption struct {
	ID                   string   `json:"id"`
	Type                 string   `json:"type"`
	Title                string   `json:"title"`
	Topic                string   `json:"topic"`
	IsActive             bool     `json:"isActive"`
	Description          string   `json:"description"`
	Impact               string   `json:"impact,omitempty"`
	Start                string   `json:"start"`
	End                  string   `json:"end"`
	ExpectedDuration     string   `json:"expectedDuration,omitempty"`
	AdditionalTravelTime string   `json:"additionalTravelTime,omitempty"`
	AffectedStations     []string `json:"affectedStations"`
}
