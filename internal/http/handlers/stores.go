package handlers

import (
	"context"

	"kanban_backend/internal/domain"
)

// The interfaces below are what handlers need from the repositories and
// services; the pgx-backed implementations live in internal/repository.

type AccessChecker interface {
	HasAccessToBoard(ctx context.Context, userID, boardID int64) (bool, error)
	CanEditBoard(ctx context.Context, userID, boardID int64) (bool, error)
	CanDeleteBoard(ctx context.Context, userID, boardID int64) (bool, error)
	BoardRole(ctx context.Context, userID, boardID int64) (domain.Role, bool, error)
	IsWorkspaceOwner(ctx context.Context, userID, workspaceID int64) (bool, error)
	WorkspaceRole(ctx context.Context, userID, workspaceID int64) (domain.Role, bool, error)
	HasWorkspaceAccess(ctx context.Context, userID, workspaceID int64) (bool, error)
	CanManageWorkspace(ctx context.Context, userID, workspaceID int64) (bool, error)
}

type WorkspaceStore interface {
	Create(ctx context.Context, w *domain.Workspace) error
	GetByID(ctx context.Context, id int64) (*domain.Workspace, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Workspace, error)
	Update(ctx context.Context, id int64, name, description string) (*domain.Workspace, error)
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, m *domain.WorkspaceMember) error
	RemoveMember(ctx context.Context, workspaceID, userID int64) error
	ListMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceMember, error)
}

type BoardStore interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id int64) (*domain.Board, error)
	ListVisible(ctx context.Context, userID, workspaceID int64) ([]domain.Board, error)
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, m *domain.BoardMember) error
	SetMember(ctx context.Context, m *domain.BoardMember) error
}

type ListStore interface {
	Create(ctx context.Context, l *domain.List) error
	GetByID(ctx context.Context, id int64) (*domain.List, error)
	ListByBoard(ctx context.Context, boardID int64) ([]domain.List, error)
	Update(ctx context.Context, id int64, title string, position *int) (*domain.List, error)
	Delete(ctx context.Context, id int64) error
}

type CardStore interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id int64) (*domain.Card, error)
	GetDetails(ctx context.Context, id int64) (*domain.Card, error)
	ListByBoard(ctx context.Context, boardID int64) ([]domain.Card, error)
	Update(ctx context.Context, id int64, patch domain.CardPatch) (*domain.Card, error)
	Delete(ctx context.Context, id int64) error
	AddAssignee(ctx context.Context, cardID, userID int64) (bool, error)
	RemoveAssignee(ctx context.Context, cardID, userID int64) error
}

type LabelStore interface {
	Create(ctx context.Context, l *domain.Label) error
	GetByID(ctx context.Context, id int64) (*domain.Label, error)
	ListByBoard(ctx context.Context, boardID int64) ([]domain.Label, error)
	Update(ctx context.Context, id int64, name, color string) (*domain.Label, error)
	Delete(ctx context.Context, id int64) error
	Toggle(ctx context.Context, cardID, labelID int64) (bool, error)
}

type ActivityLog interface {
	Log(ctx context.Context, boardID int64, cardID *int64, userID int64, activityType, description string)
	BoardActivity(ctx context.Context, boardID int64, limit, offset int) ([]domain.Activity, error)
	CardActivity(ctx context.Context, cardID int64, limit int) ([]domain.Activity, error)
}

type Notifier interface {
	Notify(ctx context.Context, actorID int64, n *domain.Notification)
	List(ctx context.Context, q domain.NotificationQuery) ([]domain.Notification, int, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, id, userID int64) (int, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, int, error)
	Delete(ctx context.Context, id, userID int64) (int, error)
}

type Searcher interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
}

type Authenticator interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	User(ctx context.Context, id int64) (*domain.User, error)
}

type CSRFIssuer interface {
	Issue(userID int64) string
}
