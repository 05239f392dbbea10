package count_test

import (
	"errors"
	"testing"

	"github.com/akontos/stvcount/internal/count"
)

// TestComputeQuota tests Droop and simple quota values
func TestComputeQuota(t *testing.T) {
	tests := []struct {
		name       string
		ballots    int
		candidates int
		seats      int
		droop      bool
		want       int
	}{
		{"droop 3 ballots 1 seat", 3, 2, 1, true, 2},
		{"droop 5 ballots 2 seats", 5, 3, 2, true, 2},
		{"droop 100 ballots 3 seats", 100, 5, 3, true, 26},
		{"droop exact division", 20, 5, 4, true, 5},
		{"simple 5 ballots 2 seats", 5, 3, 2, false, 3},
		{"simple exact division", 10, 5, 5, false, 2},
		{"simple 7 ballots 3 seats", 7, 4, 3, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := count.ComputeQuota(tt.ballots, tt.candidates, tt.seats, tt.droop)
			if err != nil {
				t.Fatalf("ComputeQuota failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeQuota = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestComputeQuota_EmptyElectorate tests the zero-ballot rejection
func TestComputeQuota_EmptyElectorate(t *testing.T) {
	_, err := count.ComputeQuota(0, 3, 2, true)
	if err != count.ErrEmptyElectorate {
		t.Errorf("expected ErrEmptyElectorate, got %v", err)
	}
}

// TestComputeQuota_InsufficientCandidates tests the candidate-count rejection
func TestComputeQuota_InsufficientCandidates(t *testing.T) {
	_, err := count.ComputeQuota(10, 1, 2, true)
	var insufficient *count.InsufficientCandidatesError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientCandidatesError, got %v", err)
	}
	if insufficient.Candidates != 1 || insufficient.Seats != 2 {
		t.Errorf("unexpected error fields: %+v", insufficient)
	}
}

// TestComputeQuota_SeatsNotPositive tests the seats validation
func TestComputeQuota_SeatsNotPositive(t *testing.T) {
	_, err := count.ComputeQuota(10, 3, 0, true)
	if err != count.ErrSeatsNotPositive {
		t.Errorf("expected ErrSeatsNotPositive, got %v", err)
	}
}
