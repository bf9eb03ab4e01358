package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nutrition-bot/internal/domain/ledger"
	"nutrition-bot/internal/interfaces/httpserver/responses"
	"nutrition-bot/internal/utils/platformerrors"
)

// LedgerHandler serves the meal log endpoint.
type LedgerHandler struct {
	service *ledger.Service
	log     zerolog.Logger
}

func NewLedgerHandler(service *ledger.Service, log zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{service: service, log: log}
}

// AddEntry godoc
// @Summary      Append a meal entry to the spreadsheet
// @Description  Writes timestamp, user_id, text and totals.kcal as one row. Returns 501 when the spreadsheet is not configured.
// @Tags         Ledger
// @Accept       json
// @Produce      json
// @Param        request body requests.AddEntryRequest true "Meal entry"
// @Success      200 {object} responses.OKResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      501 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /add-entry [post]
func (h *LedgerHandler) AddEntry(c *gin.Context) {
	var entry ledger.Entry
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&entry); err != nil {
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "invalid JSON body", err,
			"d7e2b9c4-0f5a-4a38-91c6-3b8e7d2f4a05")
		return
	}

	if err := h.service.AddEntry(c.Request.Context(), entry); err != nil {
		responses.HandleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, responses.OKResponse{OK: true})
}
