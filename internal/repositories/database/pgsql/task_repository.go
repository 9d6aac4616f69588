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

type PgxTaskRepository struct {
	db *pgxpool.Pool
}

func newPgxTaskRepository(db *pgxpool.Pool) portsrepo.TaskRepository {
	return &PgxTaskRepository{db: db}
}

var _ portsrepo.TaskRepository = (*PgxTaskRepository)(nil)

func toModelTask(d domain.Task) models.Task {
	m := models.Task{
		TaskID:      d.TaskID,
		ProjectID:   d.ProjectID,
		MilestoneID: sql.NullString{String: d.MilestoneID, Valid: d.MilestoneID != ""},
		Title:       d.Title,
		Description: sql.NullString{String: d.Description, Valid: d.Description != ""},
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.DueDate != nil {
		m.DueDate = sql.NullTime{Time: *d.DueDate, Valid: true}
	}
	return m
}

func toDomainTask(m models.Task) domain.Task {
	d := domain.Task{
		TaskID:      m.TaskID,
		ProjectID:   m.ProjectID,
		MilestoneID: m.MilestoneID.String,
		Title:       m.Title,
		Description: m.Description.String,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.DueDate.Valid {
		t := m.DueDate.Time
		d.DueDate = &t
	}
	return d
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	m := toModelTask(task)
	query := `
        INSERT INTO tasks (task_id, project_id, milestone_id, title, description, completed, due_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.TaskID, m.ProjectID, m.MilestoneID, m.Title, m.Description, m.Completed, m.DueDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
        SELECT task_id, project_id, milestone_id, title, description, completed, due_date, created_at, updated_at
        FROM tasks
        WHERE task_id = $1;
    `
	var m models.Task
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&m.TaskID, &m.ProjectID, &m.MilestoneID, &m.Title, &m.Description, &m.Completed, &m.DueDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID %s: %w", taskID, err)
	}
	d := toDomainTask(m)
	return &d, nil
}

func (r *PgxTaskRepository) FindTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := `
        SELECT task_id, project_id, milestone_id, title, description, completed, due_date, created_at, updated_at
        FROM tasks
        WHERE project_id = $1
        ORDER BY created_at ASC;
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var m models.Task
		if err := rows.Scan(&m.TaskID, &m.ProjectID, &m.MilestoneID, &m.Title, &m.Description, &m.Completed, &m.DueDate, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, toDomainTask(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", rows.Err())
	}
	return tasks, nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	m := toModelTask(task)
	query := `
        UPDATE tasks
        SET milestone_id = $1, title = $2, description = $3, completed = $4, due_date = $5, updated_at = $6
        WHERE task_id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query, m.MilestoneID, m.Title, m.Description, m.Completed, m.DueDate, m.UpdatedAt, m.TaskID)
	if err != nil {
		return fmt.Errorf("failed to execute update task query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1;`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
