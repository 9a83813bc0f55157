package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/observability/metrics"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// GitHubService proxies repository listings, caching answers in Redis
// when a cache is configured. Cache failures fall through to GitHub.
type GitHubService struct {
	Source RepoSource
	Cache  *helpers.JSONCache // nil disables caching
	Logger *logrus.Logger
}

// RepoCachePrefix namespaces cached listings: github:repos:<lower(username)>.
const RepoCachePrefix = "github:repos:"

func NewGitHubService(source RepoSource, cache *helpers.JSONCache, logger *logrus.Logger) *GitHubService {
	return &GitHubService{Source: source, Cache: cache, Logger: logger}
}

func (s *GitHubService) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	key := strings.ToLower(username)
	if s.Cache != nil {
		var cached json.RawMessage
		ok, err := s.Cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			s.warn(err, "github cache read failed", key)
		case ok:
			metrics.GitHubCacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.GitHubCacheHits.WithLabelValues("miss").Inc()
	}

	repos, err := s.Source.RecentRepos(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGitHubNotFound
		}
		return nil, err
	}

	if err := s.Cache.Set(ctx, key, repos); err != nil {
		s.warn(err, "github cache write failed", key)
	}
	return repos, nil
}

func (s *GitHubService) warn(err error, msg, key string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn(msg)
	}
}
