package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/observability/metrics"
)

type PostService struct {
	Posts repository.PostRepository
	Users repository.UserRepository
	Now   func() time.Time
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{Posts: posts, Users: users, Now: time.Now}
}

func (s *PostService) author(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Create publishes a post with a snapshot of the author's name and avatar.
func (s *PostService) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	u, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := entity.NewPost(u, text)
	if err := s.Posts.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	metrics.PostsCreated.Inc()
	return p, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*entity.Post, error) {
	return s.Posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}

// Delete removes a post; only its author may do so.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if err := p.CanDelete(userID); err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *PostService) Like(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := s.mutate(ctx, postID, func(p *entity.Post) error { return p.Like(userID) })
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (s *PostService) Unlike(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := s.mutate(ctx, postID, func(p *entity.Post) error { return p.Unlike(userID) })
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Comment adds a comment by userID at the head of the post's comments.
func (s *PostService) Comment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error) {
	u, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.mutate(ctx, postID, func(p *entity.Post) error {
		p.AddComment(u, text, s.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// Uncomment removes a comment; only its author may do so.
func (s *PostService) Uncomment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
	p, err := s.mutate(ctx, postID, func(p *entity.Post) error {
		err := p.RemoveComment(commentID, userID)
		if errors.Is(err, entity.ErrEntryNotFound) {
			return ErrCommentNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (s *PostService) mutate(ctx context.Context, postID string, rule func(*entity.Post) error) (*entity.Post, error) {
	var out *entity.Post
	err := withRetry(ctx, "post", func() error {
		p, err := s.Posts.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := rule(p); err != nil {
			return err
		}
		if err := s.Posts.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return out, err
}
