package tools

import (
	"context"
	"strconv"

	"github.com/bbernstein/nstravel/internal/format"
	"github.com/bbernstein/nstravel/internal/ns"
)

type searchStationsArgs struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
	// Accepted for compatibility; the places-api query is always NL scoped.
	CountryFilter string `json:"countryFilter"`
}

func newSearchStationsArgs() *searchStationsArgs {
	return &searchStationsArgs{MaxResults: 10, CountryFilter: format.DefaultCountry}
}

func (a *searchStationsArgs) check() error {
	return nil
}

func (a *searchStationsArgs) run(ctx context.Context, d *Dispatcher) (interface{}, error) {
	body, err := d.fetch(ctx, ns.EndpointPlaces, ns.Params{
		{Key: "q", Value: a.Query},
		{Key: "type", Value: "stationV2"},
		{Key: "size", Value: strconv.Itoa(a.MaxResults)},
	})
	if err != nil {
		return nil, err
	}

	var resp ns.PlacesResponse
	decodePayload(ctx, body, &resp)
	return format.Stations(resp.Payload), nil
}
