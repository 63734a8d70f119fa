package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raffleworks/sorteo-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawHandler handles draw workflow HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// DrawPrize handles POST /draws/prizes/:id
func (h *DrawHandler) DrawPrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	winner, err := h.drawService.DrawPrize(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, winner)
}

// DrawNext handles POST /draws/next. When every prize has been drawn it
// answers 200 with done=true instead of an error; clients poll this route
// until they see it.
func (h *DrawHandler) DrawNext(c *gin.Context) {
	winner, err := h.drawService.DrawNext(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrAllPrizesDrawn) {
			c.JSON(http.StatusOK, gin.H{"done": true, "message": "All prizes have been drawn"})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"done": false, "winner": winner})
}

// ResetRequest is the body for POST /draws/reset
type ResetRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// ResetAll handles POST /draws/reset
func (h *DrawHandler) ResetAll(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.drawService.ResetAll(c.Request.Context(), req.Confirmation); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All prizes, participants and winners deleted"})
}

// VerifyConsistency handles GET /draws/consistency
func (h *DrawHandler) VerifyConsistency(c *gin.Context) {
	report, err := h.drawService.VerifyConsistency(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStats handles GET /stats
func (h *DrawHandler) GetStats(c *gin.Context) {
	stats, err := h.drawService.GetStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
