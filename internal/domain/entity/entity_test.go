package entity

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(t *testing.T) {
	t.Helper()
	prev := newLocalID
	n := 0
	newLocalID = func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
	t.Cleanup(func() { newLocalID = prev })
}

func TestProfile_AddExperience_HeadInsertion(t *testing.T) {
	sequentialIDs(t)
	p := NewProfile("u1")

	a := p.AddExperience(Experience{Title: "A", Company: "X", From: "2019-01-01"})
	b := p.AddExperience(Experience{Title: "B", Company: "Y", From: "2021-01-01"})

	require.Len(t, p.Experience, 2)
	assert.Equal(t, "B", p.Experience[0].Title)
	assert.Equal(t, "A", p.Experience[1].Title)
	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, "id-2", b.ID)
}

func TestProfile_RemoveExperience(t *testing.T) {
	sequentialIDs(t)
	p := NewProfile("u1")
	p.AddExperience(Experience{Title: "A"})
	b := p.AddExperience(Experience{Title: "B"})
	p.AddExperience(Experience{Title: "C"})

	require.NoError(t, p.RemoveExperience(b.ID))
	assert.Equal(t, []string{"C", "A"}, []string{p.Experience[0].Title, p.Experience[1].Title})

	assert.ErrorIs(t, p.RemoveExperience(b.ID), ErrEntryNotFound)
}

func TestProfile_EducationUsesItsOwnSequence(t *testing.T) {
	sequentialIDs(t)
	p := NewProfile("u1")
	exp := p.AddExperience(Experience{Title: "A"})
	p.AddEducation(Education{School: "S1"})
	edu := p.AddEducation(Education{School: "S2"})

	assert.Equal(t, "S2", p.Education[0].School)
	assert.ErrorIs(t, p.RemoveEducation(exp.ID), ErrEntryNotFound)
	require.NoError(t, p.RemoveEducation(edu.ID))
	assert.Len(t, p.Education, 1)
	assert.Len(t, p.Experience, 1)
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"trims every element", " go , rust,  sql ", []string{"go", "rust", "sql"}},
		{"single", "go", []string{"go"}},
		{"drops empties", "go,, ,js", []string{"go", "js"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkills(tt.in))
		})
	}
}

func TestProfile_ApplyMergesOnlySuppliedFields(t *testing.T) {
	p := NewProfile("u1")
	p.Apply(ProfileFields{
		Company: "Acme",
		Status:  "Developer",
		Skills:  "go, sql",
		Social:  Social{Twitter: "tw", YouTube: "yt"},
	})

	p.Apply(ProfileFields{Status: "Senior Developer", Social: Social{YouTube: "yt2"}})

	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Senior Developer", p.Status)
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, Social{Twitter: "tw", YouTube: "yt2"}, p.Social)
}

func TestPost_LikeUnlike(t *testing.T) {
	author := &User{ID: "u", Name: "Ann", Avatar: "a.png"}
	p := NewPost(author, "hello")

	require.NoError(t, p.Like("v"))
	assert.Equal(t, []Like{{UserID: "v"}}, p.Likes)
	assert.ErrorIs(t, p.Like("v"), ErrAlreadyLiked)

	require.NoError(t, p.Like("w"))
	assert.Equal(t, "w", p.Likes[0].UserID, "likes are head-inserted")

	require.NoError(t, p.Unlike("v"))
	assert.ErrorIs(t, p.Unlike("v"), ErrNotLiked)
	assert.Equal(t, []Like{{UserID: "w"}}, p.Likes)
}

func TestPost_Comments(t *testing.T) {
	sequentialIDs(t)
	author := &User{ID: "u", Name: "Ann", Avatar: "a.png"}
	commenter := &User{ID: "v", Name: "Vic", Avatar: "v.png"}
	p := NewPost(author, "hello")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := p.AddComment(commenter, "nice", now)
	second := p.AddComment(author, "thanks", now)

	require.Len(t, p.Comments, 2)
	assert.Equal(t, second.ID, p.Comments[0].ID)
	assert.Equal(t, "Vic", first.Name)
	assert.Equal(t, "v.png", first.Avatar)

	assert.ErrorIs(t, p.RemoveComment(first.ID, author.ID), ErrForbidden)
	assert.ErrorIs(t, p.RemoveComment("missing", author.ID), ErrEntryNotFound)
	require.NoError(t, p.RemoveComment(first.ID, commenter.ID))
	assert.Len(t, p.Comments, 1)
}

func TestPost_CanDelete(t *testing.T) {
	p := NewPost(&User{ID: "u"}, "x")
	assert.NoError(t, p.CanDelete("u"))
	assert.ErrorIs(t, p.CanDelete("v"), ErrForbidden)
}
