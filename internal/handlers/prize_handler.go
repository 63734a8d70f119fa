package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raffleworks/sorteo-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeHandler handles prize-related HTTP requests
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: prizeService}
}

// CreatePrize handles POST /prizes
func (h *PrizeHandler) CreatePrize(c *gin.Context) {
	var input services.PrizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prize, err := h.prizeService.CreatePrize(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prize)
}

// CreatePrizes handles POST /prizes/bulk
func (h *PrizeHandler) CreatePrizes(c *gin.Context) {
	var inputs []services.PrizeInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(inputs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one prize is required"})
		return
	}

	prizes, err := h.prizeService.CreatePrizes(c.Request.Context(), inputs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prizes": prizes, "count": len(prizes)})
}

// GetPrizeByID handles GET /prizes/:id
func (h *PrizeHandler) GetPrizeByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	prize, err := h.prizeService.GetPrizeByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prize)
}

// GetAllPrizes handles GET /prizes
func (h *PrizeHandler) GetAllPrizes(c *gin.Context) {
	prizes, err := h.prizeService.GetAllPrizes(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prizes)
}

// UpdatePrize handles PUT /prizes/:id
func (h *PrizeHandler) UpdatePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var input services.PrizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prize, err := h.prizeService.UpdatePrize(c.Request.Context(), id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /prizes/:id
func (h *PrizeHandler) DeletePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.prizeService.DeletePrize(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prize deleted successfully"})
}
