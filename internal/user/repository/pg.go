package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/waitlist-site/backend/internal/common/db"
	"github.com/waitlist-site/backend/internal/user/domain"
)

const usersTable = "users"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, email, created_at) VALUES ($1, $2, $3)`,
		string(user.ID),
		user.Email,
		user.CreatedAt,
	)
	return db.HandleExecError(err, "create user", usersTable, start)
}

func (r *PgRepository) ListNewestFirst(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, email, created_at
		 FROM users
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list users", usersTable, start)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, db.HandleExecError(rows.Err(), "list users", usersTable, start)
}
