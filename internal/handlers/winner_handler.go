package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raffleworks/sorteo-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerHandler handles winner history HTTP requests. Reads go through the
// winner service; the two destructive routes delegate to the draw service so
// reversals keep prizes and participants consistent.
type WinnerHandler struct {
	winnerService services.WinnerService
	drawService   services.DrawService
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(winnerService services.WinnerService, drawService services.DrawService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService, drawService: drawService}
}

// GetAllWinners handles GET /winners
func (h *WinnerHandler) GetAllWinners(c *gin.Context) {
	winners, err := h.winnerService.GetAllWinners(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, winners)
}

// UndoWinner handles DELETE /winners/:id
func (h *WinnerHandler) UndoWinner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.drawService.UndoWinner(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Winner undone, prize and participant restored"})
}

// ClearAllWinners handles DELETE /winners
func (h *WinnerHandler) ClearAllWinners(c *gin.Context) {
	if err := h.drawService.ClearAllWinners(c.Request.Context()); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All winners cleared, prizes and participants restored"})
}
