package handlers

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"nutrition-bot/internal/domain/ledger"
	"nutrition-bot/internal/domain/nutrition"
)

// Provider holds all HTTP handlers.
type Provider struct {
	Nutrition *NutritionHandler
	Ledger    *LedgerHandler
}

func NewProvider(nutritionSvc nutrition.Service, ledgerSvc *ledger.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Nutrition: NewNutritionHandler(nutritionSvc, log),
		Ledger:    NewLedgerHandler(ledgerSvc, log),
	}
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(NewProvider)
