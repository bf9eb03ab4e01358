package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"nutrition-bot/internal/domain/coercion"
	"nutrition-bot/internal/domain/nutrition"
	"nutrition-bot/internal/infrastructure/metrics"
	"nutrition-bot/internal/interfaces/httpserver/requests"
	"nutrition-bot/internal/interfaces/httpserver/responses"
	"nutrition-bot/internal/utils/platformerrors"
)

// NutritionHandler serves the model-backed endpoints.
type NutritionHandler struct {
	service nutrition.Service
	log     zerolog.Logger
}

func NewNutritionHandler(service nutrition.Service, log zerolog.Logger) *NutritionHandler {
	return &NutritionHandler{service: service, log: log}
}

// CountCalories godoc
// @Summary      Estimate calories for a free-text food list
// @Description  Asks the model for per-item mass, calories and macros. The reply is returned as a JSON object; if the model did not answer with JSON the body is {"raw": "<reply>"}.
// @Tags         Nutrition
// @Accept       json
// @Produce      json
// @Param        request body requests.CountCaloriesRequest true "Food list"
// @Success      200 {object} map[string]any
// @Header       200 {string} X-Coercion-Result "parsed or fallback"
// @Failure      400 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /count-calories [post]
func (h *NutritionHandler) CountCalories(c *gin.Context) {
	var req requests.CountCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "invalid JSON body", err,
			"2d4f6a81-9c3b-4e57-b0a2-7f1e8d3c6b94")
		return
	}

	result, err := h.service.CountCalories(c.Request.Context(), req.Prompt)
	h.write(c, nutrition.OperationCountCalories, result, err)
}

// PlanDiet godoc
// @Summary      Build a meal plan from a user profile
// @Description  Forwards the profile object to the model and returns its meal plan as a JSON object, or {"raw": "<reply>"}.
// @Tags         Nutrition
// @Accept       json
// @Produce      json
// @Param        request body requests.DietProfile true "User profile"
// @Success      200 {object} map[string]any
// @Header       200 {string} X-Coercion-Result "parsed or fallback"
// @Failure      400 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /diet [post]
func (h *NutritionHandler) PlanDiet(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "unable to read request body", err,
			"61b9e0d4-3a7c-4f12-8e5b-c4d2a1f09e37")
		return
	}

	result, err := h.service.PlanDiet(c.Request.Context(), body)
	h.write(c, nutrition.OperationDiet, result, err)
}

// AnalyzePhoto godoc
// @Summary      Identify foods on a photo
// @Description  Sends the image URL to a vision-capable model and returns the same shape as /count-calories.
// @Tags         Nutrition
// @Accept       json
// @Produce      json
// @Param        request body requests.AnalyzePhotoRequest true "Image reference"
// @Success      200 {object} map[string]any
// @Header       200 {string} X-Coercion-Result "parsed or fallback"
// @Failure      400 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /analyze-photo [post]
func (h *NutritionHandler) AnalyzePhoto(c *gin.Context) {
	var req requests.AnalyzePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message := "invalid JSON body"
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			message = "image_url required"
		}
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, message, err,
			"a3c85e17-6d2b-4f90-9b14-e07d5c2a8f61")
		return
	}

	result, err := h.service.AnalyzePhoto(c.Request.Context(), req.ImageURL)
	h.write(c, nutrition.OperationAnalyzePhoto, result, err)
}

func (h *NutritionHandler) write(c *gin.Context, operation string, result coercion.Result, err error) {
	if err != nil {
		responses.HandleError(c, h.log, err)
		return
	}
	metrics.RecordCoercion(operation, string(result.Kind()))
	responses.WriteCoerced(c, result)
}

// serviceIdentity is what bot clients probe for on GET /. It does not follow
// SERVICE_NAME, which only labels telemetry.
const serviceIdentity = "nutrition-bot"

// ServiceInfo godoc
// @Summary      Service identity
// @Tags         Health
// @Produce      json
// @Success      200 {object} responses.ServiceInfo
// @Router       / [get]
func ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, responses.ServiceInfo{OK: true, Service: serviceIdentity})
}
