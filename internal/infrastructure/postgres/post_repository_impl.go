package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

// postDoc is the JSONB body of a post row.
type postDoc struct {
	Text     string           `json:"text"`
	Name     string           `json:"name"`
	Avatar   string           `json:"avatar"`
	Likes    []entity.Like    `json:"likes"`
	Comments []entity.Comment `json:"comments"`
}

func toPostDoc(p *entity.Post) ([]byte, error) {
	return json.Marshal(postDoc{
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    nonNil(p.Likes),
		Comments: nonNil(p.Comments),
	})
}

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const selectPost = `SELECT id::text, user_id::text, doc, version, created_at FROM posts`

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	doc, err := toPostDoc(p)
	if err != nil {
		return fmt.Errorf("encode post: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (id, user_id, doc)
		VALUES ($1, $2, $3)
		RETURNING version, created_at
	`, p.ID, p.UserID, doc)
	if err := row.Scan(&p.Version, &p.CreatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	p, err := scanPost(r.pool.QueryRow(ctx, selectPost+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return p, err
}

// List returns all posts, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, selectPost+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepository) Save(ctx context.Context, p *entity.Post) error {
	doc, err := toPostDoc(p)
	if err != nil {
		return fmt.Errorf("encode post: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET doc = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`, doc, p.ID, p.Version)
	if err := row.Scan(&p.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return missOrConflict(ctx, r.pool, "posts", p.ID)
		}
		return err
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	var raw []byte
	if err := row.Scan(&p.ID, &p.UserID, &raw, &p.Version, &p.CreatedAt); err != nil {
		return nil, err
	}
	var d postDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode post %s: %w", p.ID, err)
	}
	p.Text, p.Name, p.Avatar = d.Text, d.Name, d.Avatar
	p.Likes, p.Comments = nonNil(d.Likes), nonNil(d.Comments)
	return p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
