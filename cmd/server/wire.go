//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"nutrition-bot/internal/config"
	"nutrition-bot/internal/domain/ledger"
	"nutrition-bot/internal/interfaces/httpserver"
	"nutrition-bot/internal/interfaces/httpserver/handlers"
	"nutrition-bot/internal/interfaces/httpserver/routes"
)

var domainSet = wire.NewSet(
	newPromptCatalog,
	newRedactor,
	newChatCompleter,
	newNutritionService,
	newLedgerAppender,
	ledger.NewService,
)

// BuildApplication assembles the service with Wire.
func BuildApplication(cfg *config.Config, log zerolog.Logger) (*Application, error) {
	wire.Build(
		domainSet,
		handlers.HandlerProvider,
		routes.RouteProvider,
		httpserver.New,
		newMetricsServer,
		NewApplication,
	)
	return nil, nil
}
