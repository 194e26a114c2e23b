package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bbernstein/nstravel/internal/models"
	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/bbernstein/nstravel/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI answers from canned bodies keyed by the requested URL prefix.
type stubAPI struct {
	bodies map[string]string
}

func (s *stubAPI) URL(endpoint string, params ns.Params) string {
	return ns.BuildURL(ns.DefaultBaseURL, endpoint, params)
}

func (s *stubAPI) Request(_ context.Context, rawURL, _ string) (json.RawMessage, error) {
	for endpoint, body := range s.bodies {
		if strings.HasPrefix(rawURL, ns.DefaultBaseURL+"/"+endpoint+"?") || rawURL == ns.DefaultBaseURL+"/"+endpoint {
			return json.RawMessage(body), nil
		}
	}
	return nil, ns.NewAPIError(http.StatusNotFound, "Not Found")
}

func newTestMCPServer(t *testing.T, apiKey string) *mcp.Server {
	t.Helper()
	api := &stubAPI{bodies: map[string]string{
		ns.EndpointPlaces: `{"payload": [{"locations": [{"name": "Utrecht Centraal", "stationCode": "UT", "lat": 52.089, "lng": 5.11}]}]}`,
		ns.EndpointTrips:  `{"trips": [{"legs": [{}, {}], "fares": [{"priceInCents": 1050}]}]}`,
	}}
	d, err := tools.New(tools.Options{API: api, APIKey: apiKey})
	require.NoError(t, err)
	return NewMCPServer(d)
}

func connectInMemory(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", result.Content[0])
	return text.Text
}

func TestListTools(t *testing.T) {
	session := connectInMemory(t, newTestMCPServer(t, "key"))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		tools.PlanJourney, tools.GetLiveDepartures, tools.CheckDisruptions, tools.SearchStations,
	}, names)
}

func TestCallToolSuccess(t *testing.T) {
	session := connectInMemory(t, newTestMCPServer(t, "key"))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tools.PlanJourney,
		Arguments: map[string]interface{}{"fromStation": "asd", "toStation": "ut"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var trips []models.FormattedTrip
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &trips))
	require.Len(t, trips, 1)
	assert.Equal(t, 1, trips[0].Transfers)
	assert.Equal(t, "€10.50", trips[0].Price)
}

func TestCallToolErrors(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		params *mcp.CallToolParams
		want   string
	}{
		{
			name:   "missing credential",
			apiKey: "",
			params: &mcp.CallToolParams{Name: tools.SearchStations, Arguments: map[string]interface{}{"query": "Utrecht"}},
			want:   "Error: NS API key required. Set NS_API_KEY environment variable",
		},
		{
			name:   "remote error",
			apiKey: "key",
			params: &mcp.CallToolParams{Name: tools.CheckDisruptions, Arguments: map[string]interface{}{}},
			want:   "Error: NS API error: 404 Not Found",
		},
		{
			name:   "invalid argument",
			apiKey: "key",
			params: &mcp.CallToolParams{Name: tools.GetLiveDepartures, Arguments: map[string]interface{}{"station": "ut", "maxJourneys": 100}},
			want:   "Error: invalid arguments for get_live_departures",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := connectInMemory(t, newTestMCPServer(t, tt.apiKey))

			result, err := session.CallTool(context.Background(), tt.params)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.True(t, strings.HasPrefix(resultText(t, result), tt.want), resultText(t, result))
		})
	}
}

func TestLivenessAndNotFound(t *testing.T) {
	srv := httptest.NewServer(NewHandler(newTestMCPServer(t, "key"), Options{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, LivenessMsg, string(body))

	resp, err = http.Get(srv.URL + "/unknown")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", strings.TrimSpace(string(body)))
}

func TestHTTPTransports(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		transport func(base string) mcp.Transport
	}{
		{
			name: "streamable",
			transport: func(base string) mcp.Transport {
				return &mcp.StreamableClientTransport{Endpoint: base + "/mcp"}
			},
		},
		{
			name: "stateless streamable",
			opts: Options{Stateless: true},
			transport: func(base string) mcp.Transport {
				return &mcp.StreamableClientTransport{Endpoint: base + "/mcp"}
			},
		},
		{
			name: "sse",
			transport: func(base string) mcp.Transport {
				return &mcp.SSEClientTransport{Endpoint: base + "/sse"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(NewHandler(newTestMCPServer(t, "key"), tt.opts))
			defer srv.Close()

			ctx := context.Background()
			client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
			session, err := client.Connect(ctx, tt.transport(srv.URL), nil)
			require.NoError(t, err)
			defer session.Close()

			result, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      tools.SearchStations,
				Arguments: map[string]interface{}{"query": "Utrecht"},
			})
			require.NoError(t, err)
			require.False(t, result.IsError, resultText(t, result))

			var stations []models.FormattedStation
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &stations))
			require.Len(t, stations, 1)
			assert.Equal(t, "UT", stations[0].Code)
		})
	}
}
