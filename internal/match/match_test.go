package match

import (
	"testing"

	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		userSkills []string
		jobSkills  []string
		want       float64
	}{
		{"full overlap", []string{"go", "sql"}, []string{"go", "sql"}, 100},
		{"half overlap", []string{"go"}, []string{"go", "sql"}, 50},
		{"no overlap", []string{"rust"}, []string{"go", "sql"}, 0},
		{"case and whitespace insensitive", []string{" Go ", "SQL"}, []string{"go", "sql"}, 100},
		{"empty job skills", []string{"go"}, nil, 0},
		{"empty user skills", nil, []string{"go"}, 0},
		{"duplicates counted once", []string{"go", "go"}, []string{"go", "go", "sql"}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.userSkills, tt.jobSkills); got != tt.want {
				t.Errorf("Score(%v, %v) = %v, want %v", tt.userSkills, tt.jobSkills, got, tt.want)
			}
		})
	}
}

func TestRankOrdersBestFirst(t *testing.T) {
	postings := []models.JobPosting{
		{ID: 1, Title: "No match", Skills: []string{"cobol"}},
		{ID: 2, Title: "Perfect", Skills: []string{"go", "sql"}},
		{ID: 3, Title: "Partial", Skills: []string{"go", "kubernetes"}},
	}

	ranked := Rank([]string{"go", "sql"}, postings)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked jobs, got %d", len(ranked))
	}
	if ranked[0].Job.ID != 2 || ranked[1].Job.ID != 3 || ranked[2].Job.ID != 1 {
		t.Errorf("unexpected order: %d %d %d", ranked[0].Job.ID, ranked[1].Job.ID, ranked[2].Job.ID)
	}
	if ranked[0].Score != 100 {
		t.Errorf("expected perfect match score 100, got %v", ranked[0].Score)
	}
}

func TestRankStableForEqualScores(t *testing.T) {
	postings := []models.JobPosting{
		{ID: 1, Skills: []string{"go"}},
		{ID: 2, Skills: []string{"go"}},
		{ID: 3, Skills: []string{"go"}},
	}

	ranked := Rank([]string{"go"}, postings)
	for i, want := range []int64{1, 2, 3} {
		if ranked[i].Job.ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, ranked[i].Job.ID)
		}
	}
}
