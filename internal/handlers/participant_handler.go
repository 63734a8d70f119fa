package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raffleworks/sorteo-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantHandler handles participant-related HTTP requests
type ParticipantHandler struct {
	participantService services.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// CreateParticipant handles POST /participants and the public
// POST /participants/register
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var input services.ParticipantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.participantService.CreateParticipant(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// CreateParticipants handles POST /participants/bulk
func (h *ParticipantHandler) CreateParticipants(c *gin.Context) {
	var inputs []services.ParticipantInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(inputs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one participant is required"})
		return
	}

	participants, err := h.participantService.CreateParticipants(c.Request.Context(), inputs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"participants": participants, "count": len(participants)})
}

// GetParticipantByID handles GET /participants/:id
func (h *ParticipantHandler) GetParticipantByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	participant, err := h.participantService.GetParticipantByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// GetParticipantByCedula handles GET /participants/cedula/:cedula
func (h *ParticipantHandler) GetParticipantByCedula(c *gin.Context) {
	participant, err := h.participantService.GetParticipantByCedula(c.Request.Context(), c.Param("cedula"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// GetAllParticipants handles GET /participants
func (h *ParticipantHandler) GetAllParticipants(c *gin.Context) {
	participants, err := h.participantService.GetAllParticipants(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// AssignTicketRequest is the body for PUT /participants/:id/ticket
type AssignTicketRequest struct {
	TicketNumber string `json:"ticket_number" binding:"required"`
}

// AssignTicket handles PUT /participants/:id/ticket
func (h *ParticipantHandler) AssignTicket(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.participantService.AssignTicket(c.Request.Context(), id, req.TicketNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// DeleteParticipant handles DELETE /participants/:id
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.participantService.DeleteParticipant(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant deleted successfully"})
}
