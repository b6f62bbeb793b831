package http

import (
	"time"

	"kanban_backend/internal/config"
	"kanban_backend/internal/http/handlers"
	"kanban_backend/internal/http/middleware"
	"kanban_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the collaborators the router wires together.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Hub     *ws.Hub
	Limiter middleware.Limiter
	CSRF    middleware.CSRFVerifier
}

// NewRouter builds the engine with the global middleware chain.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.CORS(cfg.AllowedOrigin), middleware.RequestID(), middleware.AccessLog(), middleware.Metrics())
	if cfg.OTelEndpoint != "" {
		r.Use(otelgin.Middleware(cfg.OTelServiceName))
	}
	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.NotAllowed)

	RegisterRoutes(r, cfg, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {
	h := deps.Handler

	// Health checks (no rate limiting)
	r.GET("/health", deps.Health.Health)
	r.GET("/healthz", deps.Health.Liveness)
	r.GET("/readyz", deps.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Realtime notifications
	r.GET("/ws", ws.HandleWS(deps.Hub, cfg.AllowedOrigin))

	v1 := r.Group("/api/v1")
	v1.Use(deps.Limiter.Limit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, deps, cfg.AuthRateLimit, cfg.AuthRateWindow)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, deps Deps, authRateLimit int, authRateWindow time.Duration) {
	// Auth
	authRL := deps.Limiter.Limit("auth", authRateLimit, authRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// Everything below requires identity, and a CSRF token on mutations
	authed := api.Group("")
	authed.Use(middleware.JWT(), middleware.CSRF(deps.CSRF))

	authed.GET("/auth/csrf", h.CSRFToken)
	authed.GET("/me", h.Me)

	// Workspaces
	authed.GET("/workspaces", h.ListWorkspaces)
	authed.POST("/workspaces", h.CreateWorkspace)
	authed.GET("/workspaces/:id", h.GetWorkspace)
	authed.PUT("/workspaces/:id", h.UpdateWorkspace)
	authed.DELETE("/workspaces/:id", h.DeleteWorkspace)
	authed.POST("/workspaces/:id/members", h.AddWorkspaceMember)
	authed.DELETE("/workspaces/:id/members/:userId", h.RemoveWorkspaceMember)
	authed.GET("/workspaces/:id/boards", h.ListWorkspaceBoards)
	authed.POST("/workspaces/:id/boards", h.CreateBoard)

	// Boards
	authed.GET("/boards/:id", h.GetBoard)
	authed.DELETE("/boards/:id", h.DeleteBoard)
	authed.POST("/boards/:id/members", h.AddBoardMember)
	authed.GET("/boards/:id/lists", h.ListBoardLists)
	authed.GET("/boards/:id/labels", h.ListBoardLabels)
	authed.GET("/boards/:id/activity", h.BoardActivity)

	// Lists
	authed.POST("/lists", h.CreateList)
	authed.PUT("/lists/:id", h.UpdateList)
	authed.DELETE("/lists/:id", h.DeleteList)

	// Cards
	authed.POST("/cards", h.CreateCard)
	authed.GET("/cards/:id", h.GetCard)
	authed.PUT("/cards/:id", h.UpdateCard)
	authed.DELETE("/cards/:id", h.DeleteCard)
	authed.POST("/cards/:id/assignees", h.AddAssignee)
	authed.DELETE("/cards/:id/assignees/:userId", h.RemoveAssignee)
	authed.POST("/cards/:id/labels/toggle", h.ToggleCardLabel)
	authed.GET("/cards/:id/activity", h.CardActivity)

	// Labels
	authed.POST("/labels", h.CreateLabel)
	authed.PUT("/labels/:id", h.UpdateLabel)
	authed.DELETE("/labels/:id", h.DeleteLabel)

	// Notifications
	authed.GET("/notifications", h.ListNotifications)
	authed.GET("/notifications/unread-count", h.UnreadCount)
	authed.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	authed.POST("/notifications/:id/read", h.MarkNotificationRead)
	authed.DELETE("/notifications/:id", h.DeleteNotification)

	// Search
	authed.GET("/search", h.SearchCards)
}
