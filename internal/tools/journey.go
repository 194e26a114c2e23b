package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bbernstein/nstravel/internal/format"
	"github.com/bbernstein/nstravel/internal/ns"
	"golang.org/x/sync/errgroup"
)

type planJourneyArgs struct {
	FromStation      string `json:"fromStation"`
	ToStation        string `json:"toStation"`
	DateTime         string `json:"dateTime"`
	SearchForArrival bool   `json:"searchForArrival"`
	EarlierJourneys  int    `json:"earlierJourneys"`
	LaterJourneys    int    `json:"laterJourneys"`
}

func newPlanJourneyArgs() *planJourneyArgs {
	return &planJourneyArgs{
		SearchForArrival: false,
		EarlierJourneys:  1,
		LaterJourneys:    1,
	}
}

func (a *planJourneyArgs) check() error {
	return checkDateTime(a.DateTime)
}

func (a *planJourneyArgs) run(ctx context.Context, d *Dispatcher) (interface{}, error) {
	var (
		fromCode, toCode string
		fromOK, toOK     bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fromCode, fromOK, err = d.resolver.Resolve(gctx, a.FromStation, d.apiKey)
		return err
	})
	g.Go(func() error {
		var err error
		toCode, toOK, err = d.resolver.Resolve(gctx, a.ToStation, d.apiKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolving stations: %w", err)
	}

	var unresolved []string
	if !fromOK || fromCode == "" {
		unresolved = append(unresolved, a.FromStation)
	}
	if !toOK || toCode == "" {
		unresolved = append(unresolved, a.ToStation)
	}
	if len(unresolved) > 0 {
		return nil, NewUnresolvedStationError(unresolved...)
	}

	body, err := d.fetch(ctx, ns.EndpointTrips, ns.Params{
		{Key: "fromStation", Value: fromCode},
		{Key: "toStation", Value: toCode},
		{Key: "searchForArrival", Value: strconv.FormatBool(a.SearchForArrival)},
		{Key: "earlierJourneys", Value: strconv.Itoa(a.EarlierJourneys)},
		{Key: "laterJourneys", Value: strconv.Itoa(a.LaterJourneys)},
		{Key: "dateTime", Value: a.DateTime},
	})
	if err != nil {
		return nil, err
	}

	var resp ns.TripsResponse
	decodePayload(ctx, body, &resp)
	return format.Trips(resp.Trips), nil
}
