package router

import (
	"context"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/container"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/github"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/internal/router/modules"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

type moduleDeps struct {
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Post    *handlers.PostHandler
	Health  *handlers.HealthHandler
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := container.GetRepositories()

	// Interfaces stay nil when the backing client is not configured.
	var jobs application.Publisher
	if pub := container.GetRabbitPub(); pub != nil {
		jobs = pub
	}
	var index application.ProfileIndex
	if es := container.GetES(); es != nil {
		index = search.NewProfileIndex(es, cfg.ESProfilesIndex)
	}

	authSvc := application.NewAuthService(repos.Users, container.GetTokens(), jobs, logger, cfg.AppName)
	profileSvc := application.NewProfileService(repos.Profiles, repos.Users, repos.Accounts, index, jobs, logger, cfg.AppName)
	postSvc := application.NewPostService(repos.Posts, repos.Users)
	ghSvc := application.NewGitHubService(
		github.NewClient(context.Background(), cfg.GitHubAPIURL, cfg.GitHubToken),
		helpers.NewJSONCache(container.GetRedis(), application.RepoCachePrefix, cfg.GitHubCacheTTL),
		logger,
	)

	checks := map[string]handlers.Check{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	return moduleDeps{
		Auth:    handlers.NewAuthHandler(authSvc, logger),
		Profile: handlers.NewProfileHandler(profileSvc, ghSvc, logger),
		Post:    handlers.NewPostHandler(postSvc, logger),
		Health:  handlers.NewHealthHandler(checks, logger),
	}
}

func limiter() modules.Limiter {
	cfg := container.GetConfig()
	l := modules.Limiter{}
	if cfg.RateLimitEnabled {
		l.Redis = container.GetRedis()
	}
	if cfg.Env == "development" {
		l.Allow = middleware.AllowPrivateIP()
	}
	return l
}

// InitModules initializes all application modules and registers them with the router registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	d := buildDeps()
	tokens := container.GetTokens()
	limit := limiter()

	r.Add(modules.NewUsersModule(d.Auth, limit))
	r.Add(modules.NewAuthModule(d.Auth, tokens, limit))
	r.Add(modules.NewProfileModule(d.Profile, tokens, limit))
	r.Add(modules.NewPostModule(d.Post, tokens, limit))
	r.Add(modules.NewHealthModule(d.Health))

	if container.GetConfig().MetricsEnabled {
		r.AddRoot(modules.NewMetricsModule(limit))
	}
}
