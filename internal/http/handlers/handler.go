package handlers

import (
	"kanban_backend/internal/repository"
	"kanban_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds the collaborators that are not built from the pool.
type HandlerConfig struct {
	Publisher service.Publisher
	IDs       *service.IDCodec
	CSRF      *service.CSRF
	// Development exposes internal error details in 500 responses.
	Development bool
}

type Handler struct {
	Access        AccessChecker
	Workspaces    WorkspaceStore
	Boards        BoardStore
	Lists         ListStore
	Cards         CardStore
	Labels        LabelStore
	Activity      ActivityLog
	Notifications Notifier
	Search        Searcher
	Auth          Authenticator
	CSRF          CSRFIssuer
	Development   bool
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig) *Handler {
	return &Handler{
		Access:        repository.NewAccessRepository(db),
		Workspaces:    repository.NewWorkspaceRepository(db),
		Boards:        repository.NewBoardRepository(db),
		Lists:         repository.NewListRepository(db),
		Cards:         repository.NewCardRepository(db),
		Labels:        repository.NewLabelRepository(db),
		Activity:      service.NewActivityService(repository.NewActivityRepository(db)),
		Notifications: service.NewNotificationService(repository.NewNotificationRepository(db), cfg.Publisher),
		Search:        service.NewSearchService(repository.NewSearchRepository(db), cfg.IDs),
		Auth:          service.NewAuthService(repository.NewUserRepository(db)),
		CSRF:          cfg.CSRF,
		Development:   cfg.Development,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
