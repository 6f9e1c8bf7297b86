package jobs

import (
	"reflect"
	"testing"

	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
)

func testOwner() models.Session {
	return models.Session{
		Identity:    "42",
		DisplayName: "Acme Corp",
		Email:       "hr@acme.test",
		Role:        models.RoleFinder,
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	c := NewCache(testOwner())

	const n = 50
	for i := 0; i < n; i++ {
		c.Create(Draft{Title: "Job", Skills: "go"})
	}

	posts := c.List()
	if len(posts) != n {
		t.Fatalf("expected %d postings, got %d", n, len(posts))
	}

	seen := make(map[int64]bool, n)
	for _, p := range posts {
		if seen[p.ID] {
			t.Errorf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
	}

	// Prepend order: newest created first.
	for i := 1; i < len(posts); i++ {
		if posts[i-1].ID <= posts[i].ID {
			t.Errorf("expected descending ids, got %d before %d", posts[i-1].ID, posts[i].ID)
		}
	}
}

func TestCreateNormalizesSkills(t *testing.T) {
	c := NewCache(testOwner())

	post := c.Create(Draft{Title: "Job", Skills: "a, b ,, c"})

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(post.Skills, want) {
		t.Errorf("expected skills %v, got %v", want, post.Skills)
	}
}

func TestCreateDefaultsCompanyToOwner(t *testing.T) {
	c := NewCache(testOwner())

	post := c.Create(Draft{Title: "Job"})
	if post.Company != "Acme Corp" {
		t.Errorf("expected company from owner, got %q", post.Company)
	}

	post = c.Create(Draft{Title: "Job", Company: "Other Inc"})
	if post.Company != "Other Inc" {
		t.Errorf("expected explicit company kept, got %q", post.Company)
	}
}

func TestCreateSetsPostedDate(t *testing.T) {
	c := NewCache(testOwner())

	post := c.Create(Draft{Title: "Job"})
	if post.PostedDate.IsZero() {
		t.Error("expected posted date to be set")
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	c := NewCache(testOwner())
	c.Create(Draft{Title: "Job", Salary: "100"})

	before := c.List()
	if ok := c.Update(999999999, Draft{Title: "Changed"}); ok {
		t.Error("expected update of missing id to report false")
	}
	after := c.List()

	if !reflect.DeepEqual(before, after) {
		t.Errorf("expected list unchanged, got %v then %v", before, after)
	}
}

func TestUpdateShallowMerges(t *testing.T) {
	c := NewCache(testOwner())
	created := c.Create(Draft{
		Title:       "Backend Intern",
		Location:    "Lahore",
		Salary:      "30k",
		Description: "Go services",
		Skills:      "go, sql",
		Type:        "internship",
		Status:      "active",
	})

	if ok := c.Update(created.ID, Draft{Salary: "35k", Status: "closed"}); !ok {
		t.Fatal("expected update of existing id to succeed")
	}

	posts := c.List()
	got := posts[0]
	if got.Salary != "35k" || got.Status != "closed" {
		t.Errorf("expected updated fields applied, got salary=%q status=%q", got.Salary, got.Status)
	}
	if got.Title != "Backend Intern" || got.Location != "Lahore" {
		t.Errorf("expected untouched fields retained, got title=%q location=%q", got.Title, got.Location)
	}
	if !reflect.DeepEqual(got.Skills, []string{"go", "sql"}) {
		t.Errorf("expected skills retained, got %v", got.Skills)
	}
	if got.ID != created.ID {
		t.Errorf("expected id unchanged, got %d", got.ID)
	}
}

func TestUpdateReplacesSkills(t *testing.T) {
	c := NewCache(testOwner())
	created := c.Create(Draft{Title: "Job", Skills: "go"})

	c.Update(created.ID, Draft{Skills: "rust , , zig"})

	got := c.List()[0]
	if !reflect.DeepEqual(got.Skills, []string{"rust", "zig"}) {
		t.Errorf("expected normalized replacement skills, got %v", got.Skills)
	}
}
