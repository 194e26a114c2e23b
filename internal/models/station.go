package models

type FormattedStation struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Country string  `json:"country"`
	Type    string  `json:"type"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
