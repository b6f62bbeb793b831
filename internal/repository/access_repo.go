package repository

import (
	"context"
	"errors"

	"kanban_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccessRepository answers membership and permission questions.
// Missing boards or workspaces are reported as "no access", never as errors.
type AccessRepository struct {
	db *pgxpool.Pool
}

func NewAccessRepository(db *pgxpool.Pool) *AccessRepository {
	return &AccessRepository{db: db}
}

// HasAccessToBoard: board creator, owner of the board's workspace, or board member.
func (r *AccessRepository) HasAccessToBoard(ctx context.Context, userID, boardID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM boards b
			JOIN workspaces w ON w.id = b.workspace_id
			WHERE b.id = $1
			  AND (b.created_by = $2
			       OR w.owner_id = $2
			       OR EXISTS (SELECT 1 FROM board_members bm WHERE bm.board_id = b.id AND bm.user_id = $2))
		)`, boardID, userID).Scan(&ok)
	return ok, err
}

// CanEditBoard: owners, plus board members with the admin or member role.
func (r *AccessRepository) CanEditBoard(ctx context.Context, userID, boardID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM boards b
			JOIN workspaces w ON w.id = b.workspace_id
			WHERE b.id = $1
			  AND (b.created_by = $2
			       OR w.owner_id = $2
			       OR EXISTS (SELECT 1 FROM board_members bm
			                  WHERE bm.board_id = b.id AND bm.user_id = $2 AND bm.role IN ('admin', 'member')))
		)`, boardID, userID).Scan(&ok)
	return ok, err
}

// CanDeleteBoard: board creator or workspace owner.
func (r *AccessRepository) CanDeleteBoard(ctx context.Context, userID, boardID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM boards b
			JOIN workspaces w ON w.id = b.workspace_id
			WHERE b.id = $1 AND (b.created_by = $2 OR w.owner_id = $2)
		)`, boardID, userID).Scan(&ok)
	return ok, err
}

// BoardRole returns the caller's effective role on a board. The board creator
// and the workspace owner count as admin.
func (r *AccessRepository) BoardRole(ctx context.Context, userID, boardID int64) (domain.Role, bool, error) {
	var role *string
	var owner bool
	err := r.db.QueryRow(ctx, `
		SELECT b.created_by = $2 OR w.owner_id = $2, bm.role
		FROM boards b
		JOIN workspaces w ON w.id = b.workspace_id
		LEFT JOIN board_members bm ON bm.board_id = b.id AND bm.user_id = $2
		WHERE b.id = $1`, boardID, userID).Scan(&owner, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	switch {
	case owner:
		return domain.RoleAdmin, true, nil
	case role != nil:
		return domain.Role(*role), true, nil
	}
	return "", false, nil
}

func (r *AccessRepository) IsWorkspaceOwner(ctx context.Context, userID, workspaceID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM workspaces WHERE id = $1 AND owner_id = $2)`,
		workspaceID, userID,
	).Scan(&ok)
	return ok, err
}

// WorkspaceRole returns the caller's effective role; the owner counts as admin.
func (r *AccessRepository) WorkspaceRole(ctx context.Context, userID, workspaceID int64) (domain.Role, bool, error) {
	var role *string
	var owner bool
	err := r.db.QueryRow(ctx, `
		SELECT w.owner_id = $2, wm.role
		FROM workspaces w
		LEFT JOIN workspace_members wm ON wm.workspace_id = w.id AND wm.user_id = $2
		WHERE w.id = $1`, workspaceID, userID).Scan(&owner, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	switch {
	case owner:
		return domain.RoleAdmin, true, nil
	case role != nil:
		return domain.Role(*role), true, nil
	}
	return "", false, nil
}

func (r *AccessRepository) HasWorkspaceAccess(ctx context.Context, userID, workspaceID int64) (bool, error) {
	_, ok, err := r.WorkspaceRole(ctx, userID, workspaceID)
	return ok, err
}

// CanManageWorkspace: owner or admin member.
func (r *AccessRepository) CanManageWorkspace(ctx context.Context, userID, workspaceID int64) (bool, error) {
	role, ok, err := r.WorkspaceRole(ctx, userID, workspaceID)
	if err != nil || !ok {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}
