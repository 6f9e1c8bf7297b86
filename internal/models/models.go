package models

import (
	"encoding/json"
	"time"
)

// Role is the account role a user acts under.
type Role string

const (
	RoleSeeker Role = "seeker"
	RoleFinder Role = "finder"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleFinder
}

// Counterpart returns the other dashboard role.
func (r Role) Counterpart() Role {
	if r == RoleFinder {
		return RoleSeeker
	}
	return RoleFinder
}

// Session is the authenticated identity held by a browsing context.
// A session is committed or replaced wholesale, never mutated in place.
type Session struct {
	Identity    string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	AuthToken   string `json:"-"`
}

func (s Session) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Session) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// JobPosting is a normalized job record as held by a finder dashboard.
type JobPosting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	PostedDate  time.Time `json:"postedDate"`
}

func (p JobPosting) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *JobPosting) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}

// Profile is the registration payload sent to the auth backend.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Application records a seeker applying to a job.
type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Proposal  string    `json:"proposal,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
