package count

import "github.com/akontos/stvcount/internal/models"

// canElect reports whether electing the candidate keeps its constituency
// within the configured elected limit (0 = unlimited). Candidates without
// a constituency tag are never limited.
func canElect(c models.Candidate, elected []models.ElectedCandidate, limit int) bool {
	if limit <= 0 || c.Constituency == "" {
		return true
	}
	n := 0
	for _, e := range elected {
		if e.Constituency == c.Constituency {
			n++
		}
	}
	return n < limit
}
