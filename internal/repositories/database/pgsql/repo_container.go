package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(db),
		RefreshTokenRepo: newPgxRefreshTokenRepository(db),
		ProjectRepo:      newPgxProjectRepository(db),
		MilestoneRepo:    newPgxMilestoneRepository(db),
		TaskRepo:         newPgxTaskRepository(db),
		CommentRepo:      newPgxCommentRepository(db),
	}
}
