// Package server exposes the NS travel tools over MCP: streamable HTTP on
// /mcp, SSE on /sse, and stdio for local agent hosts.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bbernstein/nstravel/internal/api"
	"github.com/bbernstein/nstravel/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	Name        = "NS Travel MCP Server"
	LivenessMsg = "NS Travel MCP Server is running"
)

// Version is overridden at build time.
var Version = "1.0.0"

type Options struct {
	// Stateless serves /mcp without sessions and with plain JSON responses,
	// which is what the Lambda entrypoint needs.
	Stateless bool
}

// NewMCPServer registers every dispatcher tool on a fresh MCP server.
func NewMCPServer(d *tools.Dispatcher) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil)
	for _, def := range d.Definitions() {
		server.AddTool(def, toolHandler(d, def.Name))
	}
	return server
}

func toolHandler(d *tools.Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := d.Call(ctx, name, req.Params.Arguments)
		if err != nil {
			return api.Error(err.Error()), nil
		}
		return api.Text(text), nil
	}
}

// NewHandler builds the HTTP surface around an MCP server.
func NewHandler(server *mcp.Server, opts Options) http.Handler {
	getServer := func(*http.Request) *mcp.Server { return server }

	streamable := mcp.NewStreamableHTTPHandler(getServer, &mcp.StreamableHTTPOptions{
		Stateless:    opts.Stateless,
		JSONResponse: opts.Stateless,
	})
	sse := mcp.NewSSEHandler(getServer, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" || r.Method != http.MethodGet {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(LivenessMsg))
	})
	mux.Handle("/mcp", streamable)
	mux.Handle("/sse", sse)
	mux.Handle("/sse/message", sse)

	return logRequests(mux)
}

// ListenAndServe serves handler until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting MCP HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ServeStdio runs a single MCP session over stdin/stdout.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
