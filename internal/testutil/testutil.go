package testutil

import (
	"testing"

	"github.com/akontos/stvcount/internal/count"
	"github.com/akontos/stvcount/internal/models"
)

// NewCount builds a candidate registry and ballot store from shorthand
// fixtures. Ballot serials are assigned in order starting at 1.
func NewCount(t *testing.T, candidates []models.Candidate, prefs [][]int) (*count.Registry, *count.Store) {
	t.Helper()

	reg := count.NewRegistry()
	for _, c := range candidates {
		if _, err := reg.Register(c.ID, c.Name, c.Constituency); err != nil {
			t.Fatalf("failed to register candidate %d: %v", c.ID, err)
		}
	}

	store := count.NewStore(reg)
	for i, p := range prefs {
		if _, err := store.Ingest(i+1, p); err != nil {
			t.Fatalf("failed to ingest ballot %d: %v", i+1, err)
		}
	}
	return reg, store
}

// Config returns an ElectionConfig using the Droop quota and a fixed
// tie-break seed, suitable for deterministic tests.
func Config(name string, seats int) models.ElectionConfig {
	return models.ElectionConfig{
		Name:         name,
		Seats:        seats,
		DroopQuota:   true,
		TieBreakSeed: 42,
	}
}
