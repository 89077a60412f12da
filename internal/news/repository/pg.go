package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/waitlist-site/backend/internal/common/db"
	"github.com/waitlist-site/backend/internal/news/domain"
)

const postsTable = "news_posts"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, post domain.Post) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO news_posts (id, title, content, created_at) VALUES ($1, $2, $3, $4)`,
		string(post.ID),
		post.Title,
		post.Content,
		post.CreatedAt,
	)
	return db.HandleExecError(err, "create news post", postsTable, start)
}

func (r *PgRepository) ListNewestFirst(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, content, created_at
		 FROM news_posts
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list news posts", postsTable, start)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan news post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, db.HandleExecError(rows.Err(), "list news posts", postsTable, start)
}
