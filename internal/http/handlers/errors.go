package handlers

import (
	"net/http"

	"smartcab/internal/domain"
	"smartcab/internal/http/middleware"
	"smartcab/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors onto the response envelope. Storage
// failures are logged with the request id but never leak driver details to
// the client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsGenerationExhausted(err):
		logServerError(c, err)
		RespondError(c, http.StatusInternalServerError, "Could not allocate a booking ID, please retry")
	default:
		logServerError(c, err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func logServerError(c *gin.Context, err error) {
	utils.Log().WithField("request_id", middleware.GetRequestID(c)).
		WithField("path", c.Request.URL.Path).
		Errorf("request failed: %v", err)
}
