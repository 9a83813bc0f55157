package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

// store is an in-memory stand-in for the document store. It copies
// documents in and out so services cannot mutate stored state directly.
type store struct {
	mu       sync.Mutex
	seq      int
	users    map[string]entity.User
	profiles map[string]entity.Profile // keyed by owner id
	posts    map[string]entity.Post

	// staleSaves makes the next n conditional saves lose to a concurrent writer.
	staleSaves int
	// raceCreate makes the next profile create lose to a concurrent insert.
	raceCreate bool
}

func newStore() *store {
	return &store{
		users:    map[string]entity.User{},
		profiles: map[string]entity.Profile{},
		posts:    map[string]entity.Post{},
	}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func cloneProfile(p entity.Profile) entity.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]entity.Experience{}, p.Experience...)
	p.Education = append([]entity.Education{}, p.Education...)
	return p
}

func clonePost(p entity.Post) entity.Post {
	p.Likes = append([]entity.Like{}, p.Likes...)
	p.Comments = append([]entity.Comment{}, p.Comments...)
	return p
}

type fakeUsers struct{ *store }

func (f fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = f.nextID("user")
	u.CreatedAt = time.Now()
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeProfiles struct{ *store }

func (f fakeProfiles) Create(_ context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceCreate {
		f.raceCreate = false
		winner := entity.NewProfile(p.User.ID)
		winner.ID, winner.Version, winner.Status = f.nextID("profile"), 1, "winner"
		f.profiles[p.User.ID] = *winner
		return repository.ErrDuplicate
	}
	if _, ok := f.profiles[p.User.ID]; ok {
		return repository.ErrDuplicate
	}
	p.ID, p.Version = f.nextID("profile"), 1
	f.profiles[p.User.ID] = cloneProfile(*p)
	return nil
}

func (f fakeProfiles) populate(p entity.Profile) *entity.Profile {
	out := cloneProfile(p)
	if u, ok := f.users[p.User.ID]; ok {
		out.User.Name, out.User.Avatar = u.Name, u.Avatar
	}
	return &out
}

func (f fakeProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f.populate(p), nil
}

func (f fakeProfiles) List(_ context.Context) ([]*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Profile{}
	for _, p := range f.profiles {
		out = append(out, f.populate(p))
	}
	return out, nil
}

func (f fakeProfiles) Save(_ context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.profiles[p.User.ID]
	if !ok || cur.ID != p.ID {
		return repository.ErrNotFound
	}
	if f.staleSaves > 0 {
		f.staleSaves--
		cur.Version++
		f.profiles[p.User.ID] = cur
	}
	if cur.Version != p.Version {
		return repository.ErrVersionConflict
	}
	p.Version++
	f.profiles[p.User.ID] = cloneProfile(*p)
	return nil
}

type fakePosts struct{ *store }

func (f fakePosts) Create(_ context.Context, p *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID, p.Version = f.nextID("post"), 1
	p.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	f.posts[p.ID] = clonePost(*p)
	return nil
}

func (f fakePosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (f fakePosts) List(_ context.Context) ([]*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Post{}
	for _, p := range f.posts {
		p := clonePost(p)
		out = append(out, &p)
	}
	return out, nil
}

func (f fakePosts) Save(_ context.Context, p *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if f.staleSaves > 0 {
		f.staleSaves--
		cur.Version++
		f.posts[p.ID] = cur
	}
	if cur.Version != p.Version {
		return repository.ErrVersionConflict
	}
	p.Version++
	f.posts[p.ID] = clonePost(*p)
	return nil
}

func (f fakePosts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

type fakeAccounts struct{ *store }

func (f fakeAccounts) DeleteAccount(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return repository.ErrNotFound
	}
	for id, p := range f.posts {
		if p.UserID == userID {
			delete(f.posts, id)
		}
	}
	delete(f.profiles, userID)
	delete(f.users, userID)
	return nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return p.err
}

type fakeIndex struct {
	indexed map[string]entity.Profile
	removed []string
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]entity.Profile{}} }

func (i *fakeIndex) Index(_ context.Context, p *entity.Profile) error {
	i.indexed[p.User.ID] = *p
	return nil
}

func (i *fakeIndex) Remove(_ context.Context, userID string) error {
	i.removed = append(i.removed, userID)
	delete(i.indexed, userID)
	return nil
}

func (i *fakeIndex) Search(_ context.Context, _ string, _ int) ([]ProfileHit, error) {
	out := []ProfileHit{}
	for id, p := range i.indexed {
		out = append(out, ProfileHit{UserID: id, Name: p.User.Name, Status: p.Status, Skills: p.Skills})
	}
	return out, nil
}
