package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/info-mnml/Otokogi/internal/auth"
	"github.com/info-mnml/Otokogi/internal/middleware"
	"github.com/info-mnml/Otokogi/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth         *service.AuthService
	Events       *service.EventService
	Participants *service.ParticipantService
	Rounds       *service.RoundService
	Stats        *service.StatsService
	Migration    *service.MigrationService
	JWT          *auth.JWTManager
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{svc: svc}

	api := r.Group("/api")
	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)

	authed := api.Group("", middleware.RequireAuth(svc.JWT))

	authed.GET("/events", h.listEvents)
	authed.POST("/events", h.createEvent)
	authed.GET("/events/:id", h.getEvent)
	authed.PUT("/events/:id", h.updateEvent)
	authed.DELETE("/events/:id", h.deleteEvent)

	authed.POST("/events/:id/round", h.recordRound)
	authed.PUT("/events/:id/round", h.replaceRound)
	authed.GET("/events/:id/result", h.hasResult)

	authed.GET("/participants", h.listParticipants)
	authed.POST("/participants", h.createParticipant)
	authed.DELETE("/participants/:id", h.deleteParticipant)

	authed.GET("/stats/participants", h.participantStats)
	authed.GET("/stats/events", h.eventStats)
	authed.GET("/results", h.allRoundResults)

	authed.POST("/migrate", h.migrate)

	return r
}

// handlers holds the services behind the route functions.
type handlers struct {
	svc Services
}
