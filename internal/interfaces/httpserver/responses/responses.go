package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nutrition-bot/internal/domain/coercion"
	"nutrition-bot/internal/utils/platformerrors"
)

// CoercionHeader tells clients whether the body is the model's own object
// or a {"raw": ...} fallback.
const CoercionHeader = "X-Coercion-Result"

// ErrorResponse is the flat error body returned by every endpoint.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// OKResponse acknowledges a write.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ServiceInfo is the body of GET /.
type ServiceInfo struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

// HandleError maps err to a status code and writes the flat error body.
// Errors that are not PlatformErrors become a 500 with a generic message.
func HandleError(c *gin.Context, log zerolog.Logger, err error) {
	_ = c.Error(err)

	pErr := platformerrors.GetPlatformError(err)
	if pErr == nil {
		pErr = platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal, "internal server error", err, "")
	}
	platformerrors.LogError(log, pErr)

	c.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(pErr.Type), ErrorResponse{
		Error:     pErr.Message,
		Code:      pErr.UUID,
		RequestID: pErr.RequestID,
	})
}

// HandleNewError builds a handler-layer error and writes it.
func HandleNewError(c *gin.Context, log zerolog.Logger, errorType platformerrors.ErrorType, message string, cause error, uuid string) {
	HandleError(c, log, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler, errorType, message, cause, uuid))
}

// WriteCoerced writes a coerced model reply as a JSON object and tags it
// with CoercionHeader.
func WriteCoerced(c *gin.Context, result coercion.Result) {
	c.Header(CoercionHeader, string(result.Kind()))
	c.JSON(http.StatusOK, result)
}
