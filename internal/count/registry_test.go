package count_test

import (
	"errors"
	"testing"

	"github.com/akontos/stvcount/internal/count"
)

// TestRegister_AddsCandidate tests basic registration and lookup
func TestRegister_AddsCandidate(t *testing.T) {
	reg := count.NewRegistry()

	c, err := reg.Register(1, "Maria Papadopoulou", "School of Engineering")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if c.ID != 1 || c.Name != "Maria Papadopoulou" || c.Constituency != "School of Engineering" {
		t.Errorf("unexpected candidate: %+v", c)
	}

	got, err := reg.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != c {
		t.Errorf("Get returned %+v, want %+v", got, c)
	}
}

// TestRegister_DuplicateID tests that a reused ID is rejected
func TestRegister_DuplicateID(t *testing.T) {
	reg := count.NewRegistry()

	if _, err := reg.Register(1, "First", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := reg.Register(1, "Second", "")
	var dup *count.DuplicateCandidateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateCandidateError, got %v", err)
	}
	if dup.ID != 1 {
		t.Errorf("expected ID 1 in error, got %d", dup.ID)
	}
}

// TestGet_UnknownCandidate tests lookup of an unregistered ID
func TestGet_UnknownCandidate(t *testing.T) {
	reg := count.NewRegistry()

	_, err := reg.Get(99)
	var unknown *count.UnknownCandidateError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCandidateError, got %v", err)
	}
	if unknown.ID != 99 {
		t.Errorf("expected ID 99 in error, got %d", unknown.ID)
	}
}

// TestFreeze_BlocksRegistration tests that a frozen registry rejects new candidates
func TestFreeze_BlocksRegistration(t *testing.T) {
	reg := count.NewRegistry()
	if _, err := reg.Register(1, "A", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	reg.Freeze()

	if _, err := reg.Register(2, "B", ""); err != count.ErrRegistryFrozen {
		t.Errorf("expected ErrRegistryFrozen, got %v", err)
	}

	// Lookup still works after freezing
	if _, err := reg.Get(1); err != nil {
		t.Errorf("Get after Freeze failed: %v", err)
	}
}

// TestIDs_ReturnsAscendingOrder tests deterministic ID iteration
func TestIDs_ReturnsAscendingOrder(t *testing.T) {
	reg := count.NewRegistry()
	for _, id := range []int{5, 1, 3} {
		if _, err := reg.Register(id, "X", ""); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	ids := reg.IDs()
	want := []int{1, 3, 5}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}
