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
)

type PgxMilestoneRepository struct {
	db *pgxpool.Pool
}

func newPgxMilestoneRepository(db *pgxpool.Pool) portsrepo.MilestoneRepository {
	return &PgxMilestoneRepository{db: db}
}

var _ portsrepo.MilestoneRepository = (*PgxMilestoneRepository)(nil)

func toModelMilestone(d domain.Milestone) models.Milestone {
	m := models.Milestone{
		MilestoneID: d.MilestoneID,
		ProjectID:   d.ProjectID,
		Title:       d.Title,
		Description: sql.NullString{String: d.Description, Valid: d.Description != ""},
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.StartDate != nil {
		m.StartDate = sql.NullTime{Time: *d.StartDate, Valid: true}
	}
	if d.DueDate != nil {
		m.DueDate = sql.NullTime{Time: *d.DueDate, Valid: true}
	}
	return m
}

func toDomainMilestone(m models.Milestone) domain.Milestone {
	d := domain.Milestone{
		MilestoneID: m.MilestoneID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description.String,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.StartDate.Valid {
		t := m.StartDate.Time
		d.StartDate = &t
	}
	if m.DueDate.Valid {
		t := m.DueDate.Time
		d.DueDate = &t
	}
	return d
}

func (r *PgxMilestoneRepository) SaveMilestone(ctx context.Context, milestone domain.Milestone) error {
	m := toModelMilestone(milestone)
	query := `
        INSERT INTO milestones (milestone_id, project_id, title, description, start_date, due_date, completed, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.MilestoneID, m.ProjectID, m.Title, m.Description, m.StartDate, m.DueDate, m.Completed, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	return nil
}

func (r *PgxMilestoneRepository) FindMilestoneByID(ctx context.Context, milestoneID string) (*domain.Milestone, error) {
	query := `
        SELECT milestone_id, project_id, title, description, start_date, due_date, completed, created_at, updated_at
        FROM milestones
        WHERE milestone_id = $1;
    `
	var m models.Milestone
	err := r.db.QueryRow(ctx, query, milestoneID).Scan(
		&m.MilestoneID, &m.ProjectID, &m.Title, &m.Description, &m.StartDate, &m.DueDate, &m.Completed, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find milestone by ID %s: %w", milestoneID, err)
	}
	d := toDomainMilestone(m)
	return &d, nil
}

func (r *PgxMilestoneRepository) FindMilestonesByProject(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	query := `
        SELECT milestone_id, project_id, title, description, start_date, due_date, completed, created_at, updated_at
        FROM milestones
        WHERE project_id = $1
        ORDER BY created_at ASC;
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	milestones := []domain.Milestone{}
	for rows.Next() {
		var m models.Milestone
		if err := rows.Scan(&m.MilestoneID, &m.ProjectID, &m.Title, &m.Description, &m.StartDate, &m.DueDate, &m.Completed, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan milestone row: %w", err)
		}
		milestones = append(milestones, toDomainMilestone(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating milestone rows: %w", rows.Err())
	}
	return milestones, nil
}

func (r *PgxMilestoneRepository) UpdateMilestone(ctx context.Context, milestone domain.Milestone) error {
	m := toModelMilestone(milestone)
	query := `
        UPDATE milestones
        SET title = $1, description = $2, start_date = $3, due_date = $4, completed = $5, updated_at = $6
        WHERE milestone_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query, m.Title, m.Description, m.StartDate, m.DueDate, m.Completed, m.UpdatedAt, m.MilestoneID)
	if err != nil {
		return fmt.Errorf("failed to execute update milestone query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("milestone not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMilestoneRepository) DeleteMilestone(ctx context.Context, milestoneID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM milestones WHERE milestone_id = $1;`, milestoneID)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("milestone not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
