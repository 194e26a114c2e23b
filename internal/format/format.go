// Package format reshapes NS API payloads into the compact models returned to
// tool callers. Every function is pure and tolerates missing nested fields.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bbernstein/nstravel/internal/models"
	"github.com/bbernstein/nstravel/internal/ns"
)

const (
	PriceNotAvailable = "Price not available"
	NoDescription     = "No description available"
	UnknownValue      = "Unknown"
	DefaultCountry    = "NL"
	DefaultPlaceType  = "Station"
)

// NS timestamps carry the offset without a colon ("2024-01-15T10:00:00+0100").
var timeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04-0700",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses the timestamp formats seen on the NS gateway.
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// minutesBetween rounds half up, like the NS apps do for delays.
func minutesBetween(start, end string) int {
	s, okStart := ParseTime(start)
	e, okEnd := ParseTime(end)
	if !okStart || !okEnd {
		return 0
	}
	return int(math.Floor(float64(e.Sub(s))/float64(time.Minute) + 0.5))
}

// Duration renders the time between two timestamps as "<h>h <m>m". Negative
// spans decompose as floor hours plus a truncated remainder.
func Duration(start, end string) string {
	mins := minutesBetween(start, end)
	hours := int(math.Floor(float64(mins) / 60))
	return fmt.Sprintf("%dh %dm", hours, mins%60)
}

// DelayMinutes is actual minus planned in whole minutes.
func DelayMinutes(planned, actual string) int {
	return minutesBetween(planned, actual)
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func valueOr[T comparable](p *T, fallback T) T {
	var zero T
	if p == nil || *p == zero {
		return fallback
	}
	return *p
}

func Trips(trips []ns.Trip) []models.FormattedTrip {
	formatted := make([]models.FormattedTrip, 0, len(trips))
	for _, trip := range trips {
		formatted = append(formatted, formatTrip(trip))
	}
	return formatted
}

func formatTrip(trip ns.Trip) models.FormattedTrip {
	var origin, destination ns.Location
	if len(trip.Legs) > 0 {
		origin = value(trip.Legs[0].Origin)
		destination = value(trip.Legs[len(trip.Legs)-1].Destination)
	}

	legs := make([]models.FormattedLeg, 0, len(trip.Legs))
	for _, leg := range trip.Legs {
		legs = append(legs, formatLeg(leg))
	}

	return models.FormattedTrip{
		PlannedDeparture: value(origin.PlannedDateTime),
		ActualDeparture:  value(origin.ActualDateTime),
		PlannedArrival:   value(destination.PlannedDateTime),
		ActualArrival:    value(destination.ActualDateTime),
		Duration:         Duration(value(origin.PlannedDateTime), value(destination.PlannedDateTime)),
		Transfers:        len(trip.Legs) - 1,
		Optimal:          value(trip.Optimal),
		Punctuality:      value(trip.Punctuality),
		Price:            formatPrice(trip.Fares),
		Legs:             legs,
	}
}

func formatLeg(leg ns.Leg) models.FormattedLeg {
	origin := value(leg.Origin)
	destination := value(leg.Destination)
	product := value(leg.Product)

	return models.FormattedLeg{
		From:             value(origin.Name),
		To:               value(destination.Name),
		Transport:        value(product.DisplayName),
		DepartureTrack:   value(origin.Track),
		ArrivalTrack:     value(destination.Track),
		PlannedDeparture: value(origin.PlannedDateTime),
		ActualDeparture:  value(origin.ActualDateTime),
		PlannedArrival:   value(destination.PlannedDateTime),
		ActualArrival:    value(destination.ActualDateTime),
		Cancelled:        value(leg.Cancelled),
		CrowdForecast:    value(leg.CrowdForecast),
	}
}

func formatPrice(fares []ns.Fare) string {
	if len(fares) == 0 {
		return PriceNotAvailable
	}
	cents := value(fares[0].PriceInCents)
	if cents == 0 {
		return PriceNotAvailable
	}
	return fmt.Sprintf("€%.2f", float64(cents)/100)
}

func Departures(departures []ns.Departure) []models.FormattedDeparture {
	formatted := make([]models.FormattedDeparture, 0, len(departures))
	for _, dep := range departures {
		product := value(dep.Product)
		planned := value(dep.PlannedDateTime)
		actual := value(dep.ActualDateTime)
		plannedTrack := value(dep.PlannedTrack)
		actualTrack := value(dep.ActualTrack)

		delay := 0
		if actual != "" {
			delay = DelayMinutes(planned, actual)
		}

		track := actualTrack
		if track == "" {
			track = plannedTrack
		}

		formatted = append(formatted, models.FormattedDeparture{
			Destination:      value(dep.Direction),
			TrainType:        value(product.DisplayName),
			PlannedDeparture: planned,
			ActualDeparture:  actual,
			Delay:            delay,
			Track:            track,
			TrackChanged:     actualTrack != "" && actualTrack != plannedTrack,
			Cancelled:        value(dep.Cancelled),
			CrowdForecast:    value(dep.CrowdForecast),
			Operator:         value(product.OperatorName),
			Status:           value(dep.DepartureStatus),
		})
	}
	return formatted
}

func Disruptions(disruptions []ns.Disruption) []models.FormattedDisruption {
	formatted := make([]models.FormattedDisruption, 0, len(disruptions))
	for _, d := range disruptions {
		freeText := value(d.FreeText)

		description := valueOr(freeText.Body, "")
		if description == "" {
			description = valueOr(freeText.Lead, NoDescription)
		}

		formatted = append(formatted, models.FormattedDisruption{
			ID:                   value(d.ID),
			Type:                 value(d.Type),
			Title:                value(d.Title),
			Topic:                value(d.Topic),
			IsActive:             value(d.IsActive),
			Description:          description,
			Impact:               value(value(d.Impact).Description),
			Start:                value(d.Start),
			End:                  value(d.End),
			ExpectedDuration:     value(value(d.ExpectedDuration).Description),
			AdditionalTravelTime: value(value(d.SummaryAdditionalTravelTime).Label),
			AffectedStations:     affectedStations(d.PublicationSections),
		})
	}
	return formatted
}

func affectedStations(sections []ns.PublicationSection) []string {
	names := make([]string, 0)
	for _, ps := range sections {
		if ps.Section == nil {
			continue
		}
		for _, station := range ps.Section.Stations {
			names = append(names, value(station.Name))
		}
	}
	return names
}

// Stations reads only the first payload group; the places-api puts all
// station matches there.
func Stations(groups []ns.PlaceGroup) []models.FormattedStation {
	formatted := make([]models.FormattedStation, 0)
	if len(groups) == 0 {
		return formatted
	}

	for _, place := range groups[0].Locations {
		formatted = append(formatted, models.FormattedStation{
			Name:    valueOr(place.Name, UnknownValue),
			Code:    valueOr(place.StationCode, UnknownValue),
			Country: DefaultCountry,
			Type:    valueOr(place.Type, DefaultPlaceType),
			Lat:     value(place.Lat),
			Lng:     value(place.Lng),
		})
	}
	return formatted
}
