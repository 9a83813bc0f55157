package entity

import (
	"strings"
	"time"
)

// Social holds the optional social links of a profile; only supplied keys are set.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// Profile is the per-user profile aggregate. It exclusively owns the
// Experience and Education sequences, both ordered most-recent-first.
//
// Version is the optimistic concurrency token checked on every save.
type Profile struct {
	ID             string       `json:"id"`
	User           UserRef      `json:"user"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Bio            string       `json:"bio,omitempty"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Social         Social       `json:"social"`
	Version        int          `json:"-"`
	CreatedAt      time.Time    `json:"date"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ProfileFields is a partial profile update. Empty values leave the
// current value untouched.
type ProfileFields struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GitHubUsername string
	Skills         string // comma separated
	Social         Social
}

// NewProfile creates an empty profile owned by userID.
func NewProfile(userID string) *Profile {
	return &Profile{
		User:       UserRef{ID: userID},
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
	}
}

// Apply merges the supplied fields into the profile.
func (p *Profile) Apply(f ProfileFields) {
	setIf(&p.Company, f.Company)
	setIf(&p.Website, f.Website)
	setIf(&p.Location, f.Location)
	setIf(&p.Bio, f.Bio)
	setIf(&p.Status, f.Status)
	setIf(&p.GitHubUsername, f.GitHubUsername)
	if f.Skills != "" {
		p.Skills = ParseSkills(f.Skills)
	}
	setIf(&p.Social.YouTube, f.Social.YouTube)
	setIf(&p.Social.Facebook, f.Social.Facebook)
	setIf(&p.Social.Twitter, f.Social.Twitter)
	setIf(&p.Social.Instagram, f.Social.Instagram)
	setIf(&p.Social.LinkedIn, f.Social.LinkedIn)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ParseSkills splits a comma separated list and trims every element.
// Elements that are empty after trimming are dropped.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AddExperience inserts e at the head of the experience sequence with a
// fresh local id and returns the stored entry.
func (p *Profile) AddExperience(e Experience) Experience {
	e.ID = newLocalID()
	p.Experience = append([]Experience{e}, p.Experience...)
	return e
}

// RemoveExperience removes the entry with the given local id.
func (p *Profile) RemoveExperience(id string) error {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// AddEducation inserts e at the head of the education sequence.
func (p *Profile) AddEducation(e Education) Education {
	e.ID = newLocalID()
	p.Education = append([]Education{e}, p.Education...)
	return e
}

// RemoveEducation removes the entry with the given local id.
func (p *Profile) RemoveEducation(id string) error {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}
