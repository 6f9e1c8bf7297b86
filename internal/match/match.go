package match

import (
	"math"
	"sort"
	"strings"

	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
)

// RankedJob pairs a posting with its match score for one seeker.
type RankedJob struct {
	Job   models.JobPosting `json:"job"`
	Score float64           `json:"match_score"`
}

// Score computes a 0-100 match between a seeker's skills and a posting's
// required skills. Skill overlap carries 70% of the weight and tag overlap
// 30%; with tags folded into skills the two terms coincide, kept separate so
// the weights stay tunable.
func Score(userSkills, jobSkills []string) float64 {
	userSet := normalize(userSkills)
	jobSet := normalize(jobSkills)

	denom := len(jobSet)
	if denom == 0 {
		denom = 1
	}

	overlap := 0
	for skill := range jobSet {
		if _, ok := userSet[skill]; ok {
			overlap++
		}
	}

	skillScore := float64(overlap) / float64(denom)
	tagScore := float64(overlap) / float64(denom)

	score := 0.7*skillScore + 0.3*tagScore
	return math.Round(score*100*100) / 100
}

// Rank orders the postings by match score, best first. Order among equal
// scores follows the input order.
func Rank(userSkills []string, postings []models.JobPosting) []RankedJob {
	ranked := make([]RankedJob, 0, len(postings))
	for _, p := range postings {
		ranked = append(ranked, RankedJob{
			Job:   p,
			Score: Score(userSkills, p.Skills),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func normalize(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
