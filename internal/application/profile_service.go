package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/observability/metrics"
	"github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

type ProfileService struct {
	Profiles repository.ProfileRepository
	Users    repository.UserRepository
	Accounts repository.AccountRepository
	Search   ProfileIndex // nil disables indexing and search
	Logger   *logrus.Logger
	Now      func() time.Time

	notify notifier
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, accounts repository.AccountRepository, search ProfileIndex, jobs Publisher, logger *logrus.Logger, appName string) *ProfileService {
	return &ProfileService{
		Profiles: profiles,
		Users:    users,
		Accounts: accounts,
		Search:   search,
		Logger:   logger,
		Now:      time.Now,
		notify:   notifier{jobs: jobs, logger: logger, appName: appName},
	}
}

// List returns every profile with its owner's current name and avatar.
func (s *ProfileService) List(ctx context.Context) ([]*entity.Profile, error) {
	return s.Profiles.List(ctx)
}

// ByUser returns the profile owned by userID.
func (s *ProfileService) ByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

// Upsert merges f into the caller's profile, creating it on first use.
// The boolean reports whether a profile was created. A token whose
// identity no longer exists yields ErrUserNotFound.
func (s *ProfileService) Upsert(ctx context.Context, userID string, f entity.ProfileFields) (*entity.Profile, bool, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, err
	}

	var (
		out     *entity.Profile
		created bool
	)
	err := withRetry(ctx, "profile", func() error {
		p, err := s.Profiles.GetByUserID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			p = entity.NewProfile(userID)
			p.Apply(f)
			err = s.Profiles.Create(ctx, p)
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				// lost the create race; retry through the update path
				return repository.ErrVersionConflict
			case errors.Is(err, repository.ErrNotFound):
				// owner removed between the check and the insert
				return ErrUserNotFound
			case err != nil:
				return err
			}
			out, created = p, true
			return nil
		}
		if err != nil {
			return err
		}
		p.Apply(f)
		if err := s.Profiles.Save(ctx, p); err != nil {
			return err
		}
		out, created = p, false
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	s.index(ctx, out)
	return out, created, nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, e entity.Experience) (*entity.Profile, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) error {
		p.AddExperience(e)
		return nil
	})
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) error {
		return p.RemoveExperience(expID)
	})
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, e entity.Education) (*entity.Profile, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) error {
		p.AddEducation(e)
		return nil
	})
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*entity.Profile, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) error {
		return p.RemoveEducation(eduID)
	})
}

// mutate applies rule to a freshly loaded profile and saves it, retrying
// on concurrent modification.
func (s *ProfileService) mutate(ctx context.Context, userID string, rule func(*entity.Profile) error) (*entity.Profile, error) {
	var out *entity.Profile
	err := withRetry(ctx, "profile", func() error {
		p, err := s.Profiles.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := rule(p); err != nil {
			return err
		}
		if err := s.Profiles.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	s.index(ctx, out)
	return out, nil
}

// DeleteAccount removes the caller's posts, profile and identity in one
// transaction. The search index and farewell email follow best effort.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := s.Accounts.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	metrics.AccountsDeleted.Inc()

	if s.Search != nil {
		if err := s.Search.Remove(ctx, userID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("remove profile from index failed")
		}
	}
	s.notify.send(ctx, templates.AccountDeleted, u, s.Now())
	return nil
}

// SearchProfiles runs a full text query over indexed profiles.
func (s *ProfileService) SearchProfiles(ctx context.Context, query string, size int) ([]ProfileHit, error) {
	if s.Search == nil {
		return []ProfileHit{}, nil
	}
	return s.Search.Search(ctx, query, size)
}

func (s *ProfileService) index(ctx context.Context, p *entity.Profile) {
	if s.Search == nil || p == nil {
		return
	}
	doc := *p
	if doc.User.Name == "" {
		if u, err := s.Users.GetByID(ctx, p.User.ID); err == nil {
			doc.User.Name, doc.User.Avatar = u.Name, u.Avatar
		}
	}
	if err := s.Search.Index(ctx, &doc); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", p.User.ID).Warn("index profile failed")
	}
}
