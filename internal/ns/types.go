package ns

import "encoding/json"

// Response shapes of the NS gateway. Every scalar is a pointer: a nil field
// was absent from the payload, which the formatters map to a fallback value.

type Product struct {
	Number            *string `json:"number"`
	CategoryCode      *string `json:"categoryCode"`
	ShortCategoryName *string `json:"shortCategoryName"`
	LongCategoryName  *string `json:"longCategoryName"`
	OperatorCode      *string `json:"operatorCode"`
	OperatorName      *string `json:"operatorName"`
	Type              *string `json:"type"`
	DisplayName       *string `json:"displayName"`
}

// Location is a stop on a leg (origin or destination).
type Location struct {
	Name            *string  `json:"name"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	CountryCode     *string  `json:"countryCode"`
	UICCode         *string  `json:"uicCode"`
	StationCode     *string  `json:"stationCode"`
	Type            *string  `json:"type"`
	PlannedDateTime *string  `json:"plannedDateTime"`
	ActualDateTime  *string  `json:"actualDateTime"`
	Track           *string  `json:"track"`
}

type Leg struct {
	Product       *Product  `json:"product"`
	Origin        *Location `json:"origin"`
	Destination   *Location `json:"destination"`
	Direction     *string   `json:"direction"`
	Cancelled     *bool     `json:"cancelled"`
	CrowdForecast *string   `json:"crowdForecast"`
}

type Fare struct {
	PriceInCents *int    `json:"priceInCents"`
	Product      *string `json:"product"`
	TravelClass  *string `json:"travelClass"`
	DiscountType *string `json:"discountType"`
}

type Trip struct {
	Idx           *int     `json:"idx"`
	Legs          []Leg    `json:"legs"`
	CrowdForecast *string  `json:"crowdForecast"`
	Punctuality   *float64 `json:"punctuality"`
	Optimal       *bool    `json:"optimal"`
	Fares         []Fare   `json:"fares"`
	Type          *string  `json:"type"`
	Realtime      *bool    `json:"realtime"`
}

type TripsResponse struct {
	Trips []Trip `json:"trips"`
}

type Departure struct {
	Direction       *string  `json:"direction"`
	Name            *string  `json:"name"`
	PlannedDateTime *string  `json:"plannedDateTime"`
	ActualDateTime  *string  `json:"actualDateTime"`
	Product         *Product `json:"product"`
	TrainCategory   *string  `json:"trainCategory"`
	Cancelled       *bool    `json:"cancelled"`
	DepartureStatus *string  `json:"departureStatus"`
	PlannedTrack    *string  `json:"plannedTrack"`
	ActualTrack     *string  `json:"actualTrack"`
	CrowdForecast   *string  `json:"crowdForecast"`
}

// DeparturesResponse keeps the departures list raw: upstream sometimes omits
// it or sends a non-array, which callers must be able to detect.
type DeparturesResponse struct {
	Payload *struct {
		Source     *string         `json:"source"`
		Departures json.RawMessage `json:"departures"`
	} `json:"payload"`
}

type FreeText struct {
	Title      *string `json:"title"`
	ReasonText *string `json:"reasonText"`
	Header     *string `json:"header"`
	Lead       *string `json:"lead"`
	Body       *string `json:"body"`
}

type Impact struct {
	Value       *int    `json:"value"`
	Description *string `json:"description"`
}

type ExpectedDuration struct {
	Description *string `json:"description"`
	EndTime     *string `json:"endTime"`
}

type AdditionalTravelTime struct {
	Label                    *string `json:"label"`
	ShortLabel               *string `json:"shortLabel"`
	MinimumDurationInMinutes *int    `json:"minimumDurationInMinutes"`
	MaximumDurationInMinutes *int    `json:"maximumDurationInMinutes"`
}

type Coordinate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type SectionStation struct {
	UICCode     *string     `json:"uicCode"`
	StationCode *string     `json:"stationCode"`
	Name        *string     `json:"name"`
	Coordinate  *Coordinate `json:"coordinate"`
	CountryCode *string     `json:"countryCode"`
}

type Section struct {
	Stations  []SectionStation `json:"stations"`
	Direction *string          `json:"direction"`
}

type Consequence struct {
	Section     *Section `json:"section"`
	Description *string  `json:"description"`
	Level       *string  `json:"level"`
}

type PublicationSection struct {
	Section     *Section     `json:"section"`
	Consequence *Consequence `json:"consequence"`
}

type Disruption struct {
	ID                          *string               `json:"id"`
	Type                        *string               `json:"type"`
	Title                       *string               `json:"title"`
	Topic                       *string               `json:"topic"`
	IsActive                    *bool                 `json:"isActive"`
	FreeText                    *FreeText             `json:"freeText"`
	Start                       *string               `json:"start"`
	End                         *string               `json:"end"`
	Impact                      *Impact               `json:"impact"`
	ExpectedDuration            *ExpectedDuration     `json:"expectedDuration"`
	SummaryAdditionalTravelTime *AdditionalTravelTime `json:"summaryAdditionalTravelTime"`
	PublicationSections         []PublicationSection  `json:"publicationSections"`
}

// Place is one location inside a places-api result group.
type Place struct {
	Name        *string  `json:"name"`
	StationCode *string  `json:"stationCode"`
	Type        *string  `json:"type"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// PlaceGroup is one payload entry of the places-api. Stations live in
// Locations; older responses carried the code on the group itself.
type PlaceGroup struct {
	Type        *string `json:"type"`
	Name        *string `json:"name"`
	StationCode *string `json:"stationCode"`
	Locations   []Place `json:"locations"`
}

type PlacesResponse struct {
	Payload []PlaceGroup `json:"payload"`
}
