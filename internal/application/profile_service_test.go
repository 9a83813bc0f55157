package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/pkg/mailer"
	"github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

type profileFixture struct {
	svc   *ProfileService
	st    *store
	index *fakeIndex
	pub   *recordingPublisher
	user  entity.User
}

func newProfileFixture(t *testing.T) profileFixture {
	t.Helper()
	st := newStore()
	u := &entity.User{Name: "Ann", Email: "ann@example.com", Avatar: "//a.png"}
	require.NoError(t, fakeUsers{st}.Create(context.Background(), u))

	idx := newFakeIndex()
	pub := &recordingPublisher{}
	svc := NewProfileService(fakeProfiles{st}, fakeUsers{st}, fakeAccounts{st}, idx, pub, nil, "devconnector")
	return profileFixture{svc: svc, st: st, index: idx, pub: pub, user: *u}
}

func TestProfileService_UpsertCreatesThenMerges(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	p, created, err := fx.svc.Upsert(ctx, fx.user.ID, entity.ProfileFields{
		Status: "Developer", Skills: "go, sql", Company: "Acme",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []string{"go", "sql"}, p.Skills)

	p, created, err = fx.svc.Upsert(ctx, fx.user.ID, entity.ProfileFields{Status: "Lead", Skills: "rust"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Lead", p.Status)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, []string{"rust"}, p.Skills)

	assert.Len(t, fx.st.profiles, 1)
	require.Contains(t, fx.index.indexed, fx.user.ID)
	assert.Equal(t, "Ann", fx.index.indexed[fx.user.ID].User.Name)
}

func TestProfileService_UpsertRequiresLiveIdentity(t *testing.T) {
	fx := newProfileFixture(t)
	delete(fx.st.users, fx.user.ID)

	p, created, err := fx.svc.Upsert(context.Background(), fx.user.ID, entity.ProfileFields{Status: "Developer", Skills: "go"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, p)
	assert.False(t, created)
	assert.Empty(t, fx.st.profiles)
	assert.Empty(t, fx.index.indexed)
}

func TestProfileService_UpsertLosesCreateRace(t *testing.T) {
	fx := newProfileFixture(t)
	fx.st.raceCreate = true

	p, created, err := fx.svc.Upsert(context.Background(), fx.user.ID, entity.ProfileFields{Status: "Developer", Skills: "go"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Developer", p.Status)
	assert.Len(t, fx.st.profiles, 1)
}

func TestProfileService_ExperienceHeadInsertion(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()
	_, _, err := fx.svc.Upsert(ctx, fx.user.ID, entity.ProfileFields{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	_, err = fx.svc.AddExperience(ctx, fx.user.ID, entity.Experience{Title: "A", Company: "X", From: "2019-01-01"})
	require.NoError(t, err)
	p, err := fx.svc.AddExperience(ctx, fx.user.ID, entity.Experience{Title: "B", Company: "Y", From: "2021-01-01"})
	require.NoError(t, err)

	require.Len(t, p.Experience, 2)
	assert.Equal(t, []string{"B", "A"}, []string{p.Experience[0].Title, p.Experience[1].Title})

	p, err = fx.svc.RemoveExperience(ctx, fx.user.ID, p.Experience[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "B", p.Experience[0].Title)

	_, err = fx.svc.RemoveExperience(ctx, fx.user.ID, "missing")
	assert.ErrorIs(t, err, entity.ErrEntryNotFound)
}

func TestProfileService_Education(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()
	_, _, err := fx.svc.Upsert(ctx, fx.user.ID, entity.ProfileFields{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	p, err := fx.svc.AddEducation(ctx, fx.user.ID, entity.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2010"})
	require.NoError(t, err)
	p, err = fx.svc.RemoveEducation(ctx, fx.user.ID, p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestProfileService_NoProfile(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	_, err := fx.svc.AddExperience(ctx, fx.user.ID, entity.Experience{Title: "A"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = fx.svc.ByUser(ctx, fx.user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_RetriesConcurrentModification(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()
	_, _, err := fx.svc.Upsert(ctx, fx.user.ID, entity.ProfileFields{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	fx.st.staleSaves = maxAttempts - 1
	p, err := fx.svc.AddExperience(ctx, fx.user.ID, entity.Experience{Title: "A"})
	require.NoError(t, err)
	assert.Len(t, p.Experience, 1)
	assert.Len(t, fx.st.profiles[fx.user.ID].Experience, 1)

	fx.st.staleSaves = maxAttempts
	_, err = fx.svc.AddExperience(ctx, fx.user.ID, entity.Experience{Title: "B"})
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
	assert.Len(t, fx.st.profiles[fx.user.ID].Experience, 1)
}

func TestProfileService_DeleteAccount(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fx.svc.Now = func() time.Time { return at }

	_, _, err := fx.svc.Upsert(ctx, fx.user.ID, entity.ProfileFields{Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	posts := NewPostService(fakePosts{fx.st}, fakeUsers{fx.st})
	_, err = posts.Create(ctx, fx.user.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeleteAccount(ctx, fx.user.ID))

	assert.Empty(t, fx.st.users)
	assert.Empty(t, fx.st.profiles)
	assert.Empty(t, fx.st.posts)
	assert.Equal(t, []string{fx.user.ID}, fx.index.removed)

	require.Len(t, fx.pub.jobs, 1)
	job := fx.pub.jobs[0].(mailer.EmailJob)
	assert.Equal(t, templates.AccountDeleted, job.Template)
	assert.Equal(t, fx.user.Email, job.To)

	assert.ErrorIs(t, fx.svc.DeleteAccount(ctx, fx.user.ID), ErrUserNotFound)
}

func TestProfileService_Search(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()
	_, _, err := fx.svc.Upsert(ctx, fx.user.ID, entity.ProfileFields{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	hits, err := fx.svc.SearchProfiles(ctx, "go", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Ann", hits[0].Name)

	fx.svc.Search = nil
	hits, err = fx.svc.SearchProfiles(ctx, "go", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
