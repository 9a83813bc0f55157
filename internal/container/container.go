package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// app-level container to share constructed components across packages.
// The router auto-wires modules from these singletons. Optional
// components (redis, es, rabbit, pg pool) stay nil when not configured.

// Repositories is the document store the services run on.
type Repositories struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Posts    repository.PostRepository
	Accounts repository.AccountRepository
}

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher
	tokens      *helpers.TokenService
	repos       Repositories
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetTokens(t *helpers.TokenService)       { tokens = t }
func GetTokens() *helpers.TokenService        { return tokens }
func SetRepositories(r Repositories)          { repos = r }
func GetRepositories() Repositories           { return repos }
