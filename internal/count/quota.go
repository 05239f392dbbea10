package count

// ComputeQuota computes the election quota from the valid ballot count.
// Droop quota: floor(v/(s+1))+1. Simple quota: ceil(v/s). The quota is
// computed once and fixed for the whole count.
func ComputeQuota(validBallots, candidates, seats int, droop bool) (int, error) {
	if seats < 1 {
		return 0, ErrSeatsNotPositive
	}
	if validBallots == 0 {
		return 0, ErrEmptyElectorate
	}
	if candidates < seats {
		return 0, &InsufficientCandidatesError{Candidates: candidates, Seats: seats}
	}
	if droop {
		return validBallots/(seats+1) + 1, nil
	}
	return (validBallots + seats - 1) / seats, nil
}
