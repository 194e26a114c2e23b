package main

import (
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/nstravel/internal/config"
	"github.com/bbernstein/nstravel/internal/handler"
	"github.com/bbernstein/nstravel/internal/ns"
	"github.com/bbernstein/nstravel/internal/server"
	"github.com/bbernstein/nstravel/internal/station"
	"github.com/bbernstein/nstravel/internal/telemetry"
	"github.com/bbernstein/nstravel/internal/tools"
	"github.com/bbernstein/nstravel/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var (
	lambdaHandler *handler.Handler
	setupOnce     sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()
		cfg.WarnOnCredential()

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
			log.Fatal().Err(err).Msg("Failed to build tool dispatcher")
		}

		mcpServer := server.NewMCPServer(dispatcher)
		lambdaHandler = handler.New(server.NewHandler(mcpServer, server.Options{Stateless: true}), nil)
	})
}

func main() {
	lambda.Start(lambdaHandler.HandleRequest)
}
