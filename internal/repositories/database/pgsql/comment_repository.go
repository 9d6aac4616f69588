package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	"github.com/projectmanage/pm-backend/internal/models"
)

type PgxCommentRepository struct {
	db *pgxpool.Pool
}

func newPgxCommentRepository(db *pgxpool.Pool) portsrepo.CommentRepository {
	return &PgxCommentRepository{db: db}
}

var _ portsrepo.CommentRepository = (*PgxCommentRepository)(nil)

func toDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID: m.CommentID,
		TaskID:    m.TaskID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	query := `
        INSERT INTO comments (comment_id, task_id, user_id, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		comment.CommentID, comment.TaskID, comment.UserID, comment.Content, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	query := `
        SELECT comment_id, task_id, user_id, content, created_at, updated_at
        FROM comments
        WHERE comment_id = $1;
    `
	var m models.Comment
	err := r.db.QueryRow(ctx, query, commentID).Scan(
		&m.CommentID, &m.TaskID, &m.UserID, &m.Content, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment by ID %s: %w", commentID, err)
	}
	d := toDomainComment(m)
	return &d, nil
}

func (r *PgxCommentRepository) FindCommentsByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	query := `
        SELECT comment_id, task_id, user_id, content, created_at, updated_at
        FROM comments
        WHERE task_id = $1
        ORDER BY created_at ASC;
    `
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var m models.Comment
		if err := rows.Scan(&m.CommentID, &m.TaskID, &m.UserID, &m.Content, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, toDomainComment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", rows.Err())
	}
	return comments, nil
}

func (r *PgxCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment) error {
	query := `
        UPDATE comments
        SET content = $1, updated_at = $2
        WHERE comment_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, comment.Content, comment.UpdatedAt, comment.CommentID)
	if err != nil {
		return fmt.Errorf("failed to execute update comment query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCommentRepository) DeleteComment(ctx context.Context, commentID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1;`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
