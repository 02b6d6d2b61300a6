package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error" example:"quote not found"`
}

// respondError maps domain errors to status codes. Anything unknown is a
// persistence failure and is not echoed back to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuoteID):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrQuoteNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "quote not found"})
	case errors.Is(err, domain.ErrQuoteAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Error: "quote already exists"})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
