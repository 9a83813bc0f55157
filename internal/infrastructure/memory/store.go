// Package memory is a process-local document store with the same
// contracts as the Postgres repositories, including conditional saves.
// It backs STORE_DRIVER=memory and the HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.User
	profiles map[string]entity.Profile // keyed by owner id
	posts    map[string]entity.Post
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[string]entity.User{},
		profiles: map[string]entity.Profile{},
		posts:    map[string]entity.Post{},
		now:      time.Now,
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Profiles() *ProfileRepository { return &ProfileRepository{s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s} }
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s} }

func copyProfile(p entity.Profile) entity.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]entity.Experience{}, p.Experience...)
	p.Education = append([]entity.Education{}, p.Education...)
	return p
}

func copyPost(p entity.Post) entity.Post {
	p.Likes = append([]entity.Like{}, p.Likes...)
	p.Comments = append([]entity.Comment{}, p.Comments...)
	return p
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type ProfileRepository struct{ s *Store }

func (r *ProfileRepository) Create(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[p.User.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.profiles[p.User.ID]; ok {
		return repository.ErrDuplicate
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Version = 1
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.profiles[p.User.ID] = copyProfile(*p)
	return nil
}

// populated must be called with the lock held.
func (r *ProfileRepository) populated(p entity.Profile) *entity.Profile {
	out := copyProfile(p)
	if u, ok := r.s.users[p.User.ID]; ok {
		out.User.Name, out.User.Avatar = u.Name, u.Avatar
	}
	return &out
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.populated(p), nil
}

func (r *ProfileRepository) List(_ context.Context) ([]*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, r.populated(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepository) Save(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.profiles[p.User.ID]
	if !ok || cur.ID != p.ID {
		return repository.ErrNotFound
	}
	if cur.Version != p.Version {
		return repository.ErrVersionConflict
	}
	p.Version++
	p.UpdatedAt = r.s.now()
	r.s.profiles[p.User.ID] = copyProfile(*p)
	return nil
}

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[p.UserID]; !ok {
		return repository.ErrNotFound
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Version = 1
	p.CreatedAt = r.s.now()
	r.s.posts[p.ID] = copyPost(*p)
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyPost(p)
	return &out, nil
}

// List returns all posts, newest first.
func (r *PostRepository) List(_ context.Context) ([]*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		p := copyPost(p)
		out = append(out, &p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PostRepository) Save(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.Version != p.Version {
		return repository.ErrVersionConflict
	}
	p.Version++
	r.s.posts[p.ID] = copyPost(*p)
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

type AccountRepository struct{ s *Store }

func (r *AccountRepository) DeleteAccount(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return repository.ErrNotFound
	}
	for id, p := range r.s.posts {
		if p.UserID == userID {
			delete(r.s.posts, id)
		}
	}
	delete(r.s.profiles, userID)
	delete(r.s.users, userID)
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.ProfileRepository = (*ProfileRepository)(nil)
	_ repository.PostRepository    = (*PostRepository)(nil)
	_ repository.AccountRepository = (*AccountRepository)(nil)
)
