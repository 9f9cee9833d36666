package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/http/middleware"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg                 *config.Config
	jwtManager          *jwt.Manager
	generationHandler   *Generation
	presentationHandler *Presentation
	practiceHandler     *Practice
	interactiveHandler  *Interactive
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	jwtManager *jwt.Manager,
	generationHandler *Generation,
	presentationHandler *Presentation,
	practiceHandler *Practice,
	interactiveHandler *Interactive,
) *Router {
	return &Router{
		cfg:                 cfg,
		jwtManager:          jwtManager,
		generationHandler:   generationHandler,
		presentationHandler: presentationHandler,
		practiceHandler:     practiceHandler,
		interactiveHandler:  interactiveHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupPresentationRoutes(v1)
	rt.setupInteractiveRoutes(v1)
}

func (rt *Router) setupPresentationRoutes(g *echo.Group) {
	optional := middleware.OptionalAuth(rt.jwtManager)
	required := middleware.EchoAuth(rt.jwtManager)

	// Generation requires an identity; the pipeline also rejects at init
	// so direct callers cannot sidestep the check.
	g.POST("/presentations/generate", rt.generationHandler.Generate, required)

	g.GET("/presentations", rt.presentationHandler.List, required)
	g.GET("/presentations/:id", rt.presentationHandler.Get, optional)
	g.DELETE("/presentations/:id", rt.presentationHandler.Delete, required)
	g.GET("/presentations/:id/slides", rt.presentationHandler.ListSlides, optional)

	g.POST("/presentations/:id/practice", rt.practiceHandler.Analyze, optional)
	g.GET("/presentations/:id/practice", rt.practiceHandler.ListSessions, optional)
	g.GET("/practice-sessions/:id", rt.practiceHandler.GetSession, optional)
}

func (rt *Router) setupInteractiveRoutes(g *echo.Group) {
	optional := middleware.OptionalAuth(rt.jwtManager)
	g.POST("/interactive/turn", rt.interactiveHandler.Turn, optional)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
