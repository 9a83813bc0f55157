package application

import (
	"context"
	"encoding/json"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

// Publisher puts a JSON job on the notification queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProfileHit is one profile search result.
type ProfileHit struct {
	UserID   string   `json:"user"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Company  string   `json:"company,omitempty"`
	Location string   `json:"location,omitempty"`
	Skills   []string `json:"skills"`
	Score    float64  `json:"score"`
}

// ProfileIndex keeps a searchable copy of profiles. Documents are keyed
// by owner id.
type ProfileIndex interface {
	Index(ctx context.Context, p *entity.Profile) error
	Remove(ctx context.Context, userID string) error
	Search(ctx context.Context, query string, size int) ([]ProfileHit, error)
}

// RepoSource lists a GitHub user's recent repositories. A username
// GitHub does not know is reported as repository.ErrNotFound.
type RepoSource interface {
	RecentRepos(ctx context.Context, username string) (json.RawMessage, error)
}
