package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/observability/metrics"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

type AuthService struct {
	Users    repository.UserRepository
	Tokens   *helpers.TokenService
	Logger   *logrus.Logger
	HashCost int
	Now      func() time.Time

	notify notifier
}

func NewAuthService(users repository.UserRepository, tokens *helpers.TokenService, jobs Publisher, logger *logrus.Logger, appName string) *AuthService {
	return &AuthService{
		Users:    users,
		Tokens:   tokens,
		Logger:   logger,
		HashCost: helpers.PasswordCost,
		Now:      time.Now,
		notify:   notifier{jobs: jobs, logger: logger, appName: appName},
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an identity and returns a credential token for it.
// Emails are matched exactly; a taken email yields ErrUserExists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	_, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return "", ErrUserExists
	case !errors.Is(err, repository.ErrNotFound):
		return "", err
	}

	hash, err := helpers.HashPasswordWithCost(in.Password, s.HashCost)
	if err != nil {
		return "", err
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Avatar:   helpers.GravatarURL(in.Email),
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", err
	}
	metrics.UsersRegistered.Inc()
	s.notify.send(ctx, templates.Welcome, u, s.Now())

	token, _, err := s.Tokens.Issue(u.ID)
	return token, err
}

// Login exchanges an email and password for a credential token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginFailures.Inc()
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		metrics.LoginFailures.Inc()
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Debug("password mismatch")
		}
		return "", ErrInvalidCredentials
	}
	token, _, err := s.Tokens.Issue(u.ID)
	return token, err
}

// Me returns the identity behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
