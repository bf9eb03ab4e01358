package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"nutrition-bot/internal/interfaces/httpserver/handlers"
)

// Provider registers the API routes on the engine.
type Provider struct {
	handlers *handlers.Provider
}

func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{handlers: handlerProvider}
}

// Register mounts every endpoint at the root, matching the paths existing
// bot clients call.
func (p *Provider) Register(router gin.IRoutes) {
	router.POST("/count-calories", p.handlers.Nutrition.CountCalories)
	router.POST("/diet", p.handlers.Nutrition.PlanDiet)
	router.POST("/analyze-photo", p.handlers.Nutrition.AnalyzePhoto)
	router.POST("/add-entry", p.handlers.Ledger.AddEntry)
}

// RouteProvider provides routes for wire.
var RouteProvider = wire.NewSet(NewProvider)
