package models

import "time"

// Project is a named workspace. Members is the member set as user ids; it is
// never empty for a live project and holds no duplicates.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"users"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectDetails is a project with its members resolved to projections.
type ProjectDetails struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Members   []MemberProjection `json:"users"`
	CreatedAt time.Time          `json:"created_at"`
}

// Page bounds a listing.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
