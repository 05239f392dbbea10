package count

import (
	"sort"

	"github.com/akontos/stvcount/internal/models"
)

// Registry is the canonical candidate set for one count. It freezes when
// the count begins; registration afterwards fails.
type Registry struct {
	byID   map[int]models.Candidate
	frozen bool
}

// NewRegistry creates an empty candidate registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[int]models.Candidate)}
}

// Register adds a candidate. The constituency tag may be empty.
func (r *Registry) Register(id int, name, constituency string) (models.Candidate, error) {
	if r.frozen {
		return models.Candidate{}, ErrRegistryFrozen
	}
	if _, ok := r.byID[id]; ok {
		return models.Candidate{}, &DuplicateCandidateError{ID: id}
	}
	c := models.Candidate{ID: id, Name: name, Constituency: constituency}
	r.byID[id] = c
	return c, nil
}

// Get returns the candidate registered under id
func (r *Registry) Get(id int) (models.Candidate, error) {
	c, ok := r.byID[id]
	if !ok {
		return models.Candidate{}, &UnknownCandidateError{ID: id}
	}
	return c, nil
}

// Has reports whether id is registered
func (r *Registry) Has(id int) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of registered candidates
func (r *Registry) Len() int {
	return len(r.byID)
}

// IDs returns all candidate IDs in ascending order
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Freeze blocks further registration. Called by the engine when the count
// starts; there is no unfreeze.
func (r *Registry) Freeze() {
	r.frozen = true
}
