package count

import (
	"github.com/akontos/stvcount/internal/models"
)

// Store normalizes raw ranked-preference lists into validated ballots.
// Ballots are kept in ingestion order; order has no effect on the result
// beyond tie-break determinism.
type Store struct {
	reg     *Registry
	ballots []models.Ballot
	serials map[int]bool
}

// NewStore creates a ballot store validating against the given registry
func NewStore(reg *Registry) *Store {
	return &Store{reg: reg, serials: make(map[int]bool)}
}

// Ingest validates and stores one ballot. An empty ranked list is
// permitted and represents an immediately-exhausted ballot.
func (s *Store) Ingest(serial int, rankedIDs []int) (models.Ballot, error) {
	if serial < 1 {
		return models.Ballot{}, &InvalidBallotError{Serial: serial, Reason: "serial must be positive"}
	}
	if s.serials[serial] {
		return models.Ballot{}, &InvalidBallotError{Serial: serial, Reason: "duplicate serial"}
	}

	seen := make(map[int]bool, len(rankedIDs))
	for _, id := range rankedIDs {
		if !s.reg.Has(id) {
			return models.Ballot{}, &InvalidBallotError{Serial: serial, Reason: (&UnknownCandidateError{ID: id}).Error()}
		}
		if seen[id] {
			return models.Ballot{}, &InvalidBallotError{Serial: serial, Reason: "duplicate preference"}
		}
		seen[id] = true
	}

	b := models.Ballot{Serial: serial, Preferences: append([]int(nil), rankedIDs...)}
	s.serials[serial] = true
	s.ballots = append(s.ballots, b)
	return b, nil
}

// Len returns the number of ingested ballots
func (s *Store) Len() int {
	return len(s.ballots)
}

// Ballots returns the ingested ballots in ingestion order
func (s *Store) Ballots() []models.Ballot {
	return s.ballots
}
