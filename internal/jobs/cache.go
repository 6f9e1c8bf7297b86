package jobs

import (
	"strings"
	"sync"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
)

// Draft is unnormalized form input for a job posting. Skills arrive as one
// comma-separated field, exactly as typed.
type Draft struct {
	Title       string
	Company     string
	Location    string
	Salary      string
	Description string
	Skills      string
	Type        string
	Status      string
}

// Cache holds the postings owned by one finder dashboard for its mounted
// lifetime. Records live only in memory; persistence and server authority
// belong to the backend, not here.
type Cache struct {
	mu     sync.Mutex
	owner  models.Session
	lastID int64
	posts  []models.JobPosting
}

func NewCache(owner models.Session) *Cache {
	return &Cache{owner: owner}
}

// List returns the current postings, newest created first.
func (c *Cache) List() []models.JobPosting {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.JobPosting, len(c.posts))
	copy(out, c.posts)
	return out
}

// Create normalizes the draft, assigns a fresh id and posted date, and
// prepends the posting. Company defaults to the owning session's display name
// when the draft leaves it blank. Create never fails; required-field checks
// are the form's concern.
func (c *Cache) Create(draft Draft) models.JobPosting {
	c.mu.Lock()
	defer c.mu.Unlock()

	post := models.JobPosting{
		ID:          c.nextID(),
		Title:       draft.Title,
		Company:     draft.Company,
		Location:    draft.Location,
		Salary:      draft.Salary,
		Description: draft.Description,
		Skills:      splitSkills(draft.Skills),
		Type:        draft.Type,
		Status:      draft.Status,
		PostedDate:  time.Now().UTC(),
	}
	if post.Company == "" {
		post.Company = c.owner.DisplayName
	}

	c.posts = append([]models.JobPosting{post}, c.posts...)
	return post
}

// Update shallow-merges the normalized draft over the posting with the given
// id: blank draft fields keep their prior values. A missing id is a silent
// no-op, reported only through the returned flag.
func (c *Cache) Update(id int64, draft Draft) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.posts {
		if c.posts[i].ID != id {
			continue
		}
		merge(&c.posts[i], draft)
		return true
	}
	return false
}

func merge(post *models.JobPosting, draft Draft) {
	if draft.Title != "" {
		post.Title = draft.Title
	}
	if draft.Company != "" {
		post.Company = draft.Company
	}
	if draft.Location != "" {
		post.Location = draft.Location
	}
	if draft.Salary != "" {
		post.Salary = draft.Salary
	}
	if draft.Description != "" {
		post.Description = draft.Description
	}
	if draft.Skills != "" {
		post.Skills = splitSkills(draft.Skills)
	}
	if draft.Type != "" {
		post.Type = draft.Type
	}
	if draft.Status != "" {
		post.Status = draft.Status
	}
}

// nextID derives ids from the wall clock but never reuses one, so ids stay
// unique within this cache even when the clock stalls or steps backwards.
func (c *Cache) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// splitSkills turns "a, b ,, c" into ["a","b","c"]: tokens are trimmed and
// empty ones dropped. Duplicates are kept; deduplication is caller discipline.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
