package tools

import (
	"context"
	"net/url"
	"strings"

	"github.com/bbernstein/nstravel/internal/format"
	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/rs/zerolog/log"
)

type disruptionsArgs struct {
	Station  string `json:"station"`
	Type     string `json:"type"`
	IsActive bool   `json:"isActive"`
}

func newDisruptionsArgs() *disruptionsArgs {
	return &disruptionsArgs{IsActive: true}
}

func (a *disruptionsArgs) check() error {
	return nil
}

func (a *disruptionsArgs) run(ctx context.Context, d *Dispatcher) (interface{}, error) {
	endpoint := ns.EndpointDisruptions
	if a.Station != "" {
		endpoint = d.disruptionsEndpoint(ctx, a.Station)
	}

	body, err := d.fetch(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var disruptions []ns.Disruption
	decodePayload(ctx, body, &disruptions)

	return format.Disruptions(a.filter(disruptions)), nil
}

// disruptionsEndpoint falls back to the network wide list when the station
// cannot be resolved.
func (d *Dispatcher) disruptionsEndpoint(ctx context.Context, identifier string) string {
	code, ok, err := d.resolver.Resolve(ctx, identifier, d.apiKey)
	switch {
	case err != nil:
		log.Ctx(ctx).Warn().Err(err).Str("station", identifier).Msg("Station lookup failed, querying all disruptions")
		return ns.EndpointDisruptions
	case !ok:
		log.Ctx(ctx).Debug().Str("station", identifier).Msg("Unknown station, querying all disruptions")
		return ns.EndpointDisruptions
	}
	return ns.EndpointDisruptions + "/station/" + url.PathEscape(code)
}

// filter keeps disruptions of the requested type and, unless inactive ones are
// requested too, only the active ones. NS reports types in upper case.
func (a *disruptionsArgs) filter(disruptions []ns.Disruption) []ns.Disruption {
	kept := make([]ns.Disruption, 0, len(disruptions))
	for _, dis := range disruptions {
		if a.Type != "" && (dis.Type == nil || !strings.EqualFold(*dis.Type, a.Type)) {
			continue
		}
		if a.IsActive && (dis.IsActive == nil || !*dis.IsActive) {
			continue
		}
		kept = append(kept, dis)
	}
	return kept
}
