package count

import "math/big"

// weightPlaces is the decimal precision used when rendering rational
// weights into the audit trail. Internal arithmetic is exact.
const weightPlaces = 6

// ballotState is the mutable per-ballot counting state. The ballot itself
// never changes; only its current weight and active preference pointer do.
type ballotState struct {
	weight    *big.Rat
	ptr       int
	exhausted bool // no remaining preference for any standing candidate
	seated    bool // weight held by an elected candidate
}

// newBallotStates creates one unit-weight state per ballot
func newBallotStates(n int) []*ballotState {
	states := make([]*ballotState, n)
	for i := range states {
		states[i] = &ballotState{weight: big.NewRat(1, 1)}
	}
	return states
}

// ratWeight renders a weight for the audit trail
func ratWeight(w *big.Rat) string {
	return w.FloatString(weightPlaces)
}
