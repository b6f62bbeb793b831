package repository

import (
	"context"
	"fmt"

	"kanban_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkspaceRepository struct {
	db *pgxpool.Pool
}

func NewWorkspaceRepository(db *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

const workspaceColumns = `w.id, w.name, w.description, w.owner_id, w.created_at, w.updated_at`

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *domain.Workspace) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO workspaces (name, description, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		w.Name, w.Description, w.OwnerID,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id int64) (*domain.Workspace, error) {
	return scanWorkspace(r.db.QueryRow(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces w WHERE w.id = $1`, id))
}

// ListForUser returns workspaces the user owns or belongs to, newest first.
func (r *WorkspaceRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Workspace, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+workspaceColumns+`
		FROM workspaces w
		WHERE w.owner_id = $1
		   OR EXISTS (SELECT 1 FROM workspace_members wm WHERE wm.workspace_id = w.id AND wm.user_id = $1)
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.Workspace{}
	for rows.Next() {
		var w domain.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

// Update changes name and description only; owner_id is never written.
func (r *WorkspaceRepository) Update(ctx context.Context, id int64, name, description string) (*domain.Workspace, error) {
	return scanWorkspace(r.db.QueryRow(ctx, `
		UPDATE workspaces w
		SET name = $2, description = $3, updated_at = now()
		WHERE w.id = $1
		RETURNING `+workspaceColumns, id, name, description))
}

// Delete removes the workspace members and then the workspace in one transaction.
// Boards and their contents go with the workspace through FK cascades.
func (r *WorkspaceRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM workspace_members WHERE workspace_id = $1`, id); err != nil {
		return fmt.Errorf("delete workspace members: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

// AddMember inserts or updates a membership. Unknown users yield a validation error.
func (r *WorkspaceRepository) AddMember(ctx context.Context, m *domain.WorkspaceMember) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING joined_at`, m.WorkspaceID, m.UserID, string(m.Role)).Scan(&m.JoinedAt)
	if isForeignKeyViolation(err) {
		return domain.Invalid("user_id", "User does not exist")
	}
	return err
}

func (r *WorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkspaceRepository) ListMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY joined_at`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.WorkspaceMember{}
	for rows.Next() {
		var m domain.WorkspaceMember
		var role string
		if err := rows.Scan(&m.WorkspaceID, &m.UserID, &role, &m.JoinedAt); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		res = append(res, m)
	}
	return res, rows.Err()
}
