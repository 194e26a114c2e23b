package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bbernstein/nstravel/internal/format"
	"github.com/bbernstein/nstravel/internal/models"
	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/rs/zerolog/log"
)

type liveDeparturesArgs struct {
	Station     string `json:"station"`
	MaxJourneys int    `json:"maxJourneys"`
	DateTime    string `json:"dateTime"`
}

func newLiveDeparturesArgs() *liveDeparturesArgs {
	return &liveDeparturesArgs{MaxJourneys: 10}
}

func (a *liveDeparturesArgs) check() error {
	return checkDateTime(a.DateTime)
}

func (a *liveDeparturesArgs) run(ctx context.Context, d *Dispatcher) (interface{}, error) {
	code, ok, err := d.resolver.Resolve(ctx, a.Station, d.apiKey)
	if err != nil {
		return nil, fmt.Errorf("resolving station: %w", err)
	}
	if !ok || code == "" {
		return nil, NewUnresolvedStationError(a.Station)
	}

	body, err := d.fetch(ctx, ns.EndpointDepartures, ns.Params{
		{Key: "station", Value: code},
		{Key: "maxJourneys", Value: strconv.Itoa(a.MaxJourneys)},
		{Key: "dateTime", Value: a.DateTime},
	})
	if err != nil {
		return nil, err
	}

	departures, ok := departuresList(body)
	if !ok {
		log.Ctx(ctx).Warn().Str("station", code).Msg("Departures payload has no departures list")
		return models.DeparturesDiagnostic{
			Error:       "No departures found",
			Station:     code,
			Message:     fmt.Sprintf("No departures available for station %s", code),
			RawResponse: body,
		}, nil
	}
	return format.Departures(departures), nil
}

// departuresList reports false when payload.departures is missing or is not
// a list of departure objects.
func departuresList(body json.RawMessage) ([]ns.Departure, bool) {
	var resp ns.DeparturesResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Payload == nil {
		return nil, false
	}

	raw := bytes.TrimSpace(resp.Payload.Departures)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}

	var departures []ns.Departure
	if err := json.Unmarshal(raw, &departures); err != nil {
		return nil, false
	}
	return departures, true
}
