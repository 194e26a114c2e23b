package station

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/rs/zerolog/log"
)

// maxCodeLength is the longest identifier taken to already be a station code.
const maxCodeLength = 4

type NSResolver struct {
	api ns.API
}

var _ CodeResolver = (*NSResolver)(nil)

func NewNSResolver(api ns.API) *NSResolver {
	return &NSResolver{api: api}
}

// IsCode reports whether identifier is short enough to be used as a code
// as-is. It does not check that the code exists.
func IsCode(identifier string) bool {
	return utf8.RuneCountInString(identifier) <= maxCodeLength
}

func (r *NSResolver) Resolve(ctx context.Context, identifier, apiKey string) (string, bool, error) {
	if IsCode(identifier) {
		return strings.ToUpper(identifier), true, nil
	}

	url := r.api.URL(ns.EndpointPlaces, ns.Params{
		{Key: "q", Value: identifier},
		{Key: "type", Value: "Station"},
		{Key: "size", Value: "1"},
		{Key: "countryCode", Value: "NL"},
	})

	body, err := r.api.Request(ctx, url, apiKey)
	if err != nil {
		var apiErr *ns.APIError
		if errors.As(err, &apiErr) {
			log.Debug().Err(err).Str("identifier", identifier).Msg("Station lookup rejected by NS API")
			return "", false, nil
		}
		return "", false, fmt.Errorf("looking up station %q: %w", identifier, err)
	}

	var places ns.PlacesResponse
	if err := json.Unmarshal(body, &places); err != nil {
		return "", false, fmt.Errorf("decoding station lookup: %w", err)
	}

	code := firstStationCode(places.Payload)
	if code == "" {
		log.Debug().Str("identifier", identifier).Msg("No station matched")
		return "", false, nil
	}

	log.Trace().Str("identifier", identifier).Str("code", code).Msg("Resolved station")
	return code, true, nil
}

func firstStationCode(groups []ns.PlaceGroup) string {
	if len(groups) == 0 {
		return ""
	}
	group := groups[0]
	if len(group.Locations) > 0 && group.Locations[0].StationCode != nil && *group.Locations[0].StationCode != "" {
		return *group.Locations[0].StationCode
	}
	if group.StationCode != nil {
		return *group.StationCode
	}
	return ""
}
