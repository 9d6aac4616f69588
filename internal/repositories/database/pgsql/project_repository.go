package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	"github.com/projectmanage/pm-backend/internal/models"
	"github.com/projectmanage/pm-backend/internal/utils/pagination"
)

type PgxProjectRepository struct {
	db *pgxpool.Pool
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepository {
	return &PgxProjectRepository{db: db}
}

var _ portsrepo.ProjectRepository = (*PgxProjectRepository)(nil)

func toModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Title:       d.Title,
		Description: sql.NullString{String: d.Description, Valid: d.Description != ""},
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description.String,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
        INSERT INTO projects (project_id, title, description, owner_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query, m.ProjectID, m.Title, m.Description, m.OwnerID, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
        SELECT project_id, title, description, owner_id, created_at, updated_at
        FROM projects
        WHERE project_id = $1;
    `
	var m models.Project
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&m.ProjectID, &m.Title, &m.Description, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	p := toDomainProject(m)
	return &p, nil
}

// FindProjectsByOwner pages through the owner's projects with a keyset cursor
// on (created_at, project_id) descending. The returned token is empty on the
// last page.
func (r *PgxProjectRepository) FindProjectsByOwner(ctx context.Context, ownerID string, limit int, afterToken string) ([]domain.Project, string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT project_id, title, description, owner_id, created_at, updated_at
        FROM projects
        WHERE owner_id = $1
        ORDER BY created_at DESC, project_id DESC
        LIMIT $2;
    `
	args := []any{ownerID, limit + 1}

	if afterToken != "" {
		createdAt, projectID, err := pagination.DecodeCursor(afterToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query = `
            SELECT project_id, title, description, owner_id, created_at, updated_at
            FROM projects
            WHERE owner_id = $1 AND (created_at, project_id) < ($2, $3)
            ORDER BY created_at DESC, project_id DESC
            LIMIT $4;
        `
		args = []any{ownerID, createdAt, projectID, limit + 1}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var m models.Project
		if err := rows.Scan(&m.ProjectID, &m.Title, &m.Description, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, toDomainProject(m))
	}
	if rows.Err() != nil {
		return nil, "", fmt.Errorf("error iterating project rows: %w", rows.Err())
	}

	nextToken := ""
	if len(projects) > limit {
		projects = projects[:limit]
		last := projects[len(projects)-1]
		nextToken = pagination.EncodeCursor(last.CreatedAt, last.ProjectID)
	}

	return projects, nextToken, nil
}

func (r *PgxProjectRepository) ExistsByTitleForOwner(ctx context.Context, ownerID string, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE owner_id = $1 AND title = $2);`,
		ownerID, title,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project title: %w", err)
	}
	return exists, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
        UPDATE projects
        SET title = $1, description = $2, updated_at = $3
        WHERE project_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, m.Title, m.Description, m.UpdatedAt, m.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to execute update project query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE project_id = $1;`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
