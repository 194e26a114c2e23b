package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	PlanJourney       = "plan_journey"
	GetLiveDepartures = "get_live_departures"
	CheckDisruptions  = "check_disruptions"
	SearchStations    = "search_stations"
)

const (
	DisruptionTypeMaintenance = "maintenance"
	DisruptionTypeDisruption  = "disruption"
)

func bound(v float64) *float64 {
	return &v
}

func defaultValue(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func stringProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func boolProp(description string, def bool) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: description, Default: defaultValue(def)}
}

func intProp(description string, min, max float64, def int) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: description,
		Minimum:     bound(min),
		Maximum:     bound(max),
		Default:     defaultValue(def),
	}
}

func planJourneyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        PlanJourney,
		Title:       "Plan journey",
		Description: "Plan a train journey between two Dutch stations, including transfers, travel time and price.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"fromStation":      stringProp("Departure station name or code (e.g., 'Amsterdam Centraal' or 'asd')"),
				"toStation":        stringProp("Destination station name or code (e.g., 'Utrecht Centraal' or 'ut')"),
				"dateTime":         stringProp("Departure date and time in ISO format (optional, defaults to now)"),
				"searchForArrival": boolProp("Search for arrival time instead of departure time", false),
				"earlierJourneys":  intProp("Number of earlier journey options to include", 0, 5, 1),
				"laterJourneys":    intProp("Number of later journey options to include", 0, 5, 1),
			},
			Required: []string{"fromStation", "toStation"},
		},
	}
}

func liveDeparturesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        GetLiveDepartures,
		Title:       "Live departures",
		Description: "List upcoming departures from a station with delays, tracks and cancellations.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"station":     stringProp("Station name or code (e.g., 'Amsterdam Centraal' or 'asd')"),
				"maxJourneys": intProp("Maximum number of departures to return", 1, 40, 10),
				"dateTime":    stringProp("Date and time to get departures for (ISO format, optional)"),
			},
			Required: []string{"station"},
		},
	}
}

func disruptionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        CheckDisruptions,
		Title:       "Check disruptions",
		Description: "Check current disruptions and maintenance work, optionally for a single station.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"station": stringProp("Specific station to check disruptions for (optional)"),
				"type": {
					Type:        "string",
					Description: "Type of disruption to filter (optional)",
					Enum:        []interface{}{DisruptionTypeMaintenance, DisruptionTypeDisruption},
				},
				"isActive": boolProp("Only show currently active disruptions", true),
			},
		},
	}
}

func searchStationsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        SearchStations,
		Title:       "Search stations",
		Description: "Search stations by (partial) name and return their codes and coordinates.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query":      stringProp("Station name or partial name to search for"),
				"maxResults": intProp("Maximum number of results to return", 1, 50, 10),
				"countryFilter": {
					Type:        "string",
					Description: "Filter by country code (default: 'NL' for Netherlands)",
					Default:     defaultValue("NL"),
				},
			},
			Required: []string{"query"},
		},
	}
}
