package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raffleworks/sorteo-backend/internal/config"
	"github.com/raffleworks/sorteo-backend/internal/handlers"
	"github.com/raffleworks/sorteo-backend/internal/middleware"
)

// Handlers bundles the constructed handlers for router setup
type Handlers struct {
	Auth        *handlers.AuthHandler
	Prize       *handlers.PrizeHandler
	Participant *handlers.ParticipantHandler
	Winner      *handlers.WinnerHandler
	Draw        *handlers.DrawHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Self-service registration: anyone can sign up, look themselves up
		// by cedula and claim a ticket.
		public.POST("/participants/register", h.Participant.CreateParticipant)
		public.GET("/participants/cedula/:cedula", h.Participant.GetParticipantByCedula)
		public.PUT("/participants/:id/ticket", h.Participant.AssignTicket)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		prizes := protected.Group("/prizes")
		{
			prizes.GET("", h.Prize.GetAllPrizes)
			prizes.GET("/:id", h.Prize.GetPrizeByID)
			prizes.POST("", h.Prize.CreatePrize)
			prizes.POST("/bulk", h.Prize.CreatePrizes)
			prizes.PUT("/:id", h.Prize.UpdatePrize)
			prizes.DELETE("/:id", h.Prize.DeletePrize)
		}

		participants := protected.Group("/participants")
		{
			participants.GET("", h.Participant.GetAllParticipants)
			participants.GET("/:id", h.Participant.GetParticipantByID)
			participants.POST("", h.Participant.CreateParticipant)
			participants.POST("/bulk", h.Participant.CreateParticipants)
			participants.DELETE("/:id", h.Participant.DeleteParticipant)
		}

		winners := protected.Group("/winners")
		{
			winners.GET("", h.Winner.GetAllWinners)
			winners.DELETE("", h.Winner.ClearAllWinners)
			winners.DELETE("/:id", h.Winner.UndoWinner)
		}

		draws := protected.Group("/draws")
		{
			draws.POST("/prizes/:id", h.Draw.DrawPrize)
			draws.POST("/next", h.Draw.DrawNext)
			draws.POST("/reset", h.Draw.ResetAll)
			draws.GET("/consistency", h.Draw.VerifyConsistency)
		}

		protected.GET("/stats", h.Draw.GetStats)
	}

	return router
}
