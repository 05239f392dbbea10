package count

import (
	"testing"

	"github.com/akontos/stvcount/internal/models"
)

// TestCanElect tests the constituency elected-limit check
func TestCanElect(t *testing.T) {
	elected := []models.ElectedCandidate{
		{CandidateID: 1, Constituency: "School of Engineering"},
		{CandidateID: 2, Constituency: "School of Engineering"},
		{CandidateID: 3, Constituency: "School of Medicine"},
	}

	tests := []struct {
		name      string
		candidate models.Candidate
		limit     int
		want      bool
	}{
		{"unlimited", models.Candidate{ID: 4, Constituency: "School of Engineering"}, 0, true},
		{"under limit", models.Candidate{ID: 4, Constituency: "School of Medicine"}, 2, true},
		{"at limit", models.Candidate{ID: 4, Constituency: "School of Engineering"}, 2, false},
		{"over limit", models.Candidate{ID: 4, Constituency: "School of Engineering"}, 1, false},
		{"untagged candidate never limited", models.Candidate{ID: 4}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canElect(tt.candidate, elected, tt.limit); got != tt.want {
				t.Errorf("canElect = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCanElect_NoElected tests the empty elected list
func TestCanElect_NoElected(t *testing.T) {
	c := models.Candidate{ID: 1, Constituency: "School of Law"}
	if !canElect(c, nil, 1) {
		t.Error("expected candidate to be electable with nothing elected yet")
	}
}
