package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/handler/api"
	"resource-scheduler/internal/handler/middleware"
	"resource-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type handlers struct {
	bookings     *api.BookingHandler
	availability *api.AvailabilityHandler
	admin        *api.AdminHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers{
		bookings:     bookingHandler,
		availability: availabilityHandler,
		admin:        adminHandler,
	}, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogging(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.bookings.Create},
			{Method: http.MethodGet, Path: "", Handler: h.bookings.List},
			{Method: http.MethodGet, Path: "/stats", Handler: h.bookings.Stats},
			{Method: http.MethodPost, Path: "/cancel", Handler: h.bookings.CancelMany},
			{Method: http.MethodGet, Path: "/:id", Handler: h.bookings.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.bookings.Update},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.bookings.Cancel},
		})

		resources := apiGroup.Group("/resources")
		addRoutes(resources, []route{
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.availability.Check},
		})

		adminOnly := []gin.HandlerFunc{middleware.RequireRole(user.RoleAdmin)}
		admin := apiGroup.Group("/admin")
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/bookings/:id/approve", Handler: h.admin.Approve, Mw: adminOnly},
			{Method: http.MethodPost, Path: "/bookings/:id/reject", Handler: h.admin.Reject, Mw: adminOnly},
			{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: h.admin.Cancel, Mw: adminOnly},
			{Method: http.MethodPost, Path: "/expiry-sweep", Handler: h.admin.ExpirySweep, Mw: adminOnly},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
