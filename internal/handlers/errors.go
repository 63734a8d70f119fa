package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"github.com/raffleworks/sorteo-backend/internal/services"
	"github.com/raffleworks/sorteo-backend/internal/utils"
)

// handleServiceError maps service failures to HTTP responses. Anything not in
// the taxonomy is reported as a persistence failure.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *utils.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.Is(err, services.ErrNoEligibleParticipants):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrWinnerNotFound),
		errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPrizeAlreadyDrawn),
		errors.Is(err, services.ErrParticipantHasWon):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConfirmationRequired),
		errors.Is(err, services.ErrDuplicateCedula),
		errors.Is(err, services.ErrDuplicateTicket):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persistence failure: " + err.Error()})
	}
}
