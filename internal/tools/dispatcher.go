// Package tools implements the four NS travel tools: argument validation,
// station resolution, the NS API call and normalization of its response.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bbernstein/nstravel/internal/api"
	"github.com/bbernstein/nstravel/internal/format"
	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/bbernstein/nstravel/internal/station"
	"github.com/bbernstein/nstravel/internal/telemetry"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type Options struct {
	API      ns.API
	Resolver station.CodeResolver
	APIKey   string
	Observer *telemetry.Observer
}

// invocation is a decoded, defaulted argument set for one tool.
type invocation interface {
	check() error
	run(ctx context.Context, d *Dispatcher) (interface{}, error)
}

type tool struct {
	def    *mcp.Tool
	schema *jsonschema.Resolved
	args   func() invocation
}

// Dispatcher holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	api      ns.API
	resolver station.CodeResolver
	apiKey   string
	observer *telemetry.Observer

	order []string
	tools map[string]tool
}

func New(opts Options) (*Dispatcher, error) {
	if opts.API == nil {
		return nil, errors.New("tools: NS API client is required")
	}
	if opts.Resolver == nil {
		opts.Resolver = station.NewNSResolver(opts.API)
	}

	d := &Dispatcher{
		api:      opts.API,
		resolver: opts.Resolver,
		apiKey:   opts.APIKey,
		observer: opts.Observer,
		tools:    make(map[string]tool),
	}

	registrations := []struct {
		def  *mcp.Tool
		args func() invocation
	}{
		{planJourneyTool(), func() invocation { return newPlanJourneyArgs() }},
		{liveDeparturesTool(), func() invocation { return newLiveDeparturesArgs() }},
		{disruptionsTool(), func() invocation { return newDisruptionsArgs() }},
		{searchStationsTool(), func() invocation { return newSearchStationsArgs() }},
	}
	for _, r := range registrations {
		schema, ok := r.def.InputSchema.(*jsonschema.Schema)
		if !ok {
			return nil, fmt.Errorf("tools: %s has no input schema", r.def.Name)
		}
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("tools: resolving schema for %s: %w", r.def.Name, err)
		}
		d.order = append(d.order, r.def.Name)
		d.tools[r.def.Name] = tool{def: r.def, schema: resolved, args: r.args}
	}

	return d, nil
}

// Definitions lists the tools in registration order.
func (d *Dispatcher) Definitions() []*mcp.Tool {
	defs := make([]*mcp.Tool, 0, len(d.order))
	for _, name := range d.order {
		defs = append(defs, d.tools[name].def)
	}
	return defs
}

// Call runs one tool and returns its result as pretty printed JSON.
func (d *Dispatcher) Call(ctx context.Context, name string, arguments json.RawMessage) (text string, err error) {
	t, ok := d.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	logger := log.With().
		Str("tool", name).
		Str("invocation_id", uuid.NewString()).
		Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		outcome := "success"
		if err != nil {
			outcome = "error"
			logger.Warn().Err(err).Dur("elapsed", elapsed).Msg("Tool call failed")
		} else {
			logger.Debug().Dur("elapsed", elapsed).Msg("Tool call completed")
		}
		d.observer.ObserveInvocation(ctx, name, outcome, elapsed)
	}()

	inv, err := d.decode(t, arguments)
	if err != nil {
		return "", err
	}
	if d.apiKey == "" {
		return "", ErrMissingCredential
	}

	result, err := inv.run(ctx, d)
	if err != nil {
		return "", err
	}
	return api.Marshal(result)
}

// decode validates the raw arguments against the tool schema and fills an
// argument struct that already carries the defaults.
func (d *Dispatcher) decode(t tool, arguments json.RawMessage) (invocation, error) {
	arguments = bytes.TrimSpace(arguments)
	if len(arguments) == 0 || bytes.Equal(arguments, []byte("null")) {
		arguments = json.RawMessage("{}")
	}

	var instance map[string]interface{}
	if err := json.Unmarshal(arguments, &instance); err != nil {
		return nil, NewInvalidArgumentError(t.def.Name, fmt.Errorf("arguments must be a JSON object: %w", err))
	}
	if err := t.schema.Validate(instance); err != nil {
		return nil, NewInvalidArgumentError(t.def.Name, err)
	}

	// Re-encoding the validated instance turns integral floats such as 2.0
	// into plain integers the argument structs can hold.
	normalized, err := json.Marshal(instance)
	if err != nil {
		return nil, NewInvalidArgumentError(t.def.Name, err)
	}

	inv := t.args()
	if err := json.Unmarshal(normalized, inv); err != nil {
		return nil, NewInvalidArgumentError(t.def.Name, err)
	}
	if err := inv.check(); err != nil {
		return nil, NewInvalidArgumentError(t.def.Name, err)
	}
	return inv, nil
}

func checkDateTime(value string) error {
	if value == "" {
		return nil
	}
	if _, ok := format.ParseTime(value); !ok {
		return fmt.Errorf("dateTime %q is not an ISO-8601 timestamp", value)
	}
	return nil
}

// fetch issues one NS request; API errors are returned as is so callers see
// the status line.
func (d *Dispatcher) fetch(ctx context.Context, endpoint string, params ns.Params) (json.RawMessage, error) {
	return d.api.Request(ctx, d.api.URL(endpoint, params), d.apiKey)
}

// decodePayload is lenient: a body that does not fit target leaves it empty.
func decodePayload(ctx context.Context, body json.RawMessage, target interface{}) {
	if err := json.Unmarshal(body, target); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Unexpected NS response shape")
	}
}
