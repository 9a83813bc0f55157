package entity

import "time"

type Like struct {
	UserID string `json:"user"`
}

// Comment carries a snapshot of the author's name and avatar taken when
// the comment was written. The snapshot is not refreshed afterwards.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post is the post aggregate. Likes and Comments are ordered
// most-recent-first and only mutated through the methods below.
// Name and Avatar are the author snapshot at creation time.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"date"`
}

// NewPost builds a post authored by u.
func NewPost(u *User, text string) *Post {
	return &Post{
		UserID:   u.ID,
		Text:     text,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Likes:    []Like{},
		Comments: []Comment{},
	}
}

// CanDelete reports whether actor may delete the post.
func (p *Post) CanDelete(actor string) error {
	if p.UserID != actor {
		return ErrForbidden
	}
	return nil
}

func (p *Post) likeIndex(userID string) int {
	for i, l := range p.Likes {
		if l.UserID == userID {
			return i
		}
	}
	return -1
}

// Like records userID at the head of the likes sequence.
func (p *Post) Like(userID string) error {
	if p.likeIndex(userID) >= 0 {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
	return nil
}

// Unlike removes userID from the likes sequence.
func (p *Post) Unlike(userID string) error {
	i := p.likeIndex(userID)
	if i < 0 {
		return ErrNotLiked
	}
	p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
	return nil
}

// AddComment inserts a comment by author at the head of the sequence.
func (p *Post) AddComment(author *User, text string, at time.Time) Comment {
	c := Comment{
		ID:        newLocalID(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: at,
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// RemoveComment removes commentID if actor wrote it.
func (p *Post) RemoveComment(commentID, actor string) error {
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != actor {
			return ErrForbidden
		}
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrEntryNotFound
}
