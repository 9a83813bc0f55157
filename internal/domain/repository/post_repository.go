package repository

import (
	"context"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

// PostRepository persists post aggregates. Save follows the same
// optimistic concurrency contract as ProfileRepository.Save.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context) ([]*entity.Post, error)
	Save(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
}

// AccountRepository removes an identity together with everything it owns.
type AccountRepository interface {
	DeleteAccount(ctx context.Context, userID string) error
}
