package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bbernstein/nstravel/internal/models"
	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/bbernstein/nstravel/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "HTTP_TIMEOUT", "NS_BASE_URL", "NS_API_KEY", "LISTEN_ADDR", "PORT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestToolsCommand(t *testing.T) {
	isolateEnv(t)

	out, err := executeCommand(t, "tools")
	require.NoError(t, err)

	var defs []struct {
		Name        string          `json:"name"`
		InputSchema json.RawMessage `json:"inputSchema"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	require.Len(t, defs, 4)
	assert.Equal(t, tools.PlanJourney, defs[0].Name)
	assert.Contains(t, string(defs[0].InputSchema), "fromStation")
}

func TestCallCommand(t *testing.T) {
	isolateEnv(t)

	var gotKey string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(ns.SubscriptionKeyHeader)
		if r.URL.Path != "/"+ns.EndpointPlaces {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"payload": [{"locations": [{"name": "Utrecht Centraal", "stationCode": "UT"}]}]}`))
	}))
	defer gateway.Close()

	t.Setenv("NS_BASE_URL", gateway.URL)
	t.Setenv("NS_API_KEY", "cli-key")

	out, err := executeCommand(t, "call", tools.SearchStations, `{"query": "Utrecht"}`)
	require.NoError(t, err)
	assert.Equal(t, "cli-key", gotKey)

	var stations []models.FormattedStation
	require.NoError(t, json.Unmarshal([]byte(out), &stations))
	require.Len(t, stations, 1)
	assert.Equal(t, "UT", stations[0].Code)
}

func TestCallCommandReadsConfigFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "nsmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\n"), 0o600))

	_, err := executeCommand(t, "--config", path, "call", tools.CheckDisruptions)
	assert.ErrorIs(t, err, tools.ErrMissingCredential)
}

func TestCallCommandErrors(t *testing.T) {
	isolateEnv(t)
	t.Setenv("NS_API_KEY", "cli-key")

	tests := []struct {
		name string
		args []string
	}{
		{"no tool", []string{"call"}},
		{"unknown tool", []string{"call", "book_ticket"}},
		{"invalid json", []string{"call", tools.SearchStations, `{"query":`}},
		{"missing config file", []string{"--config", "/does/not/exist.yaml", "call", tools.SearchStations}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
