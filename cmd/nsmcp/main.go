package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bbernstein/nstravel/internal/config"
	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/bbernstein/nstravel/internal/server"
	"github.com/bbernstein/nstravel/internal/station"
	"github.com/bbernstein/nstravel/internal/telemetry"
	"github.com/bbernstein/nstravel/internal/tools"
	"github.com/bbernstein/nstravel/pkg/http/client"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "nsmcp",
		Short:        "NS travel information as MCP tools",
		SilenceUsage: true,
		Version:      server.Version,
	}
	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newStdioCmd())
	root.AddCommand(newToolsCmd())
	root.AddCommand(newCallCmd())
	return root
}

// setup loads configuration and wires the dispatcher the same way for every
// subcommand.
func setup(cmd *cobra.Command) (*config.Config, *tools.Dispatcher, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = zerolog.DebugLevel
	}
	cfg.InitializeLogging()

	observer := telemetry.Default()
	httpClient := client.New(client.Options{Timeout: cfg.HTTPTimeout})
	api := ns.NewClient(httpClient, cfg.NSBaseURL, observer)

	dispatcher, err := tools.New(tools.Options{
		API:      api,
		Resolver: station.NewNSResolver(api),
		APIKey:   cfg.NSAPIKey,
		Observer: observer,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, dispatcher, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over HTTP (/mcp streamable, /sse)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, dispatcher, err := setup(cmd)
			if err != nil {
				return err
			}
			cfg.WarnOnCredential()

			addr := cfg.ListenAddr
			if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
				addr = flagAddr
			}
			stateless, _ := cmd.Flags().GetBool("stateless")

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			handler := server.NewHandler(server.NewMCPServer(dispatcher), server.Options{Stateless: stateless})
			return server.ListenAndServe(ctx, addr, handler)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides LISTEN_ADDR/PORT)")
	cmd.Flags().Bool("stateless", false, "Serve /mcp without sessions, answering with plain JSON")
	return cmd
}

func newStdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, dispatcher, err := setup(cmd)
			if err != nil {
				return err
			}
			cfg.WarnOnCredential()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return server.ServeStdio(ctx, server.NewMCPServer(dispatcher))
		},
	}
}

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available tools and their input schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, dispatcher, err := setup(cmd)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dispatcher.Definitions())
		},
	}
}

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Invoke one tool and print its JSON result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, dispatcher, err := setup(cmd)
			if err != nil {
				return err
			}

			var raw json.RawMessage
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
				if !json.Valid(raw) {
					return errors.New("arguments must be valid JSON")
				}
			}

			text, err := dispatcher.Call(cmd.Context(), args[0], raw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}
