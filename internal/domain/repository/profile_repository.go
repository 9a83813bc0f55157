package repository

import (
	"context"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

// ProfileRepository persists profile aggregates as whole documents.
//
// Save is a conditional write: it fails with ErrVersionConflict when the
// stored version no longer matches p.Version, and bumps p.Version on success.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)
	Save(ctx context.Context, p *entity.Profile) error
}
