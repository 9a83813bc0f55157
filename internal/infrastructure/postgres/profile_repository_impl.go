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

// profileDoc is the JSONB body of a profile row.
type profileDoc struct {
	Company        string              `json:"company,omitempty"`
	Website        string              `json:"website,omitempty"`
	Location       string              `json:"location,omitempty"`
	Status         string              `json:"status"`
	Skills         []string            `json:"skills"`
	Bio            string              `json:"bio,omitempty"`
	GitHubUsername string              `json:"githubusername,omitempty"`
	Experience     []entity.Experience `json:"experience"`
	Education      []entity.Education  `json:"education"`
	Social         entity.Social       `json:"social"`
}

func toProfileDoc(p *entity.Profile) ([]byte, error) {
	return json.Marshal(profileDoc{
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         nonNil(p.Skills),
		Bio:            p.Bio,
		GitHubUsername: p.GitHubUsername,
		Experience:     nonNil(p.Experience),
		Education:      nonNil(p.Education),
		Social:         p.Social,
	})
}

func (d profileDoc) applyTo(p *entity.Profile) {
	p.Company = d.Company
	p.Website = d.Website
	p.Location = d.Location
	p.Status = d.Status
	p.Skills = nonNil(d.Skills)
	p.Bio = d.Bio
	p.GitHubUsername = d.GitHubUsername
	p.Experience = nonNil(d.Experience)
	p.Education = nonNil(d.Education)
	p.Social = d.Social
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const selectProfile = `
	SELECT p.id::text, p.user_id::text, u.name, u.avatar, p.doc, p.version, p.created_at, p.updated_at
	FROM profiles p
	JOIN users u ON u.id = p.user_id
`

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	doc, err := toProfileDoc(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, user_id, doc)
		VALUES ($1, $2, $3)
		RETURNING version, created_at, updated_at
	`, p.ID, p.User.ID, doc)
	if err := row.Scan(&p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	if !validID(userID) {
		return nil, repository.ErrNotFound
	}
	p, err := scanProfile(r.pool.QueryRow(ctx, selectProfile+` WHERE p.user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return p, err
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.pool.Query(ctx, selectProfile+` ORDER BY p.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Save(ctx context.Context, p *entity.Profile) error {
	doc, err := toProfileDoc(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE profiles
		SET doc = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3
		RETURNING version, updated_at
	`, doc, p.ID, p.Version)
	if err := row.Scan(&p.Version, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return missOrConflict(ctx, r.pool, "profiles", p.ID)
		}
		return err
	}
	return nil
}

// missOrConflict tells a deleted document apart from a stale version
// after a conditional update matched no row.
func missOrConflict(ctx context.Context, pool *pgxpool.Pool, table, id string) error {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return repository.ErrVersionConflict
	}
	return repository.ErrNotFound
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	var raw []byte
	if err := row.Scan(&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar, &raw, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var d profileDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", p.ID, err)
	}
	d.applyTo(p)
	return p, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
