package count

import (
	"math/big"

	"github.com/akontos/stvcount/internal/models"
)

// transferFrom redistributes every ballot currently attributed to the
// given candidate to its next standing preference. For surplus transfers
// ratio is surplus/tally: each ballot keeps weight*ratio and the retained
// quota portion accrues to the seated pool. For elimination and block
// transfers ratio is nil and the full weight moves. Ballots with no next
// standing preference become exhausted; their weight leaves the active
// pool permanently.
//
// Ballots are visited in ingestion order, so the returned moves are
// deterministic for identical inputs.
func (e *Engine) transferFrom(from int, ratio *big.Rat) []models.BallotMove {
	var moves []models.BallotMove
	for i, b := range e.store.Ballots() {
		st := e.states[i]
		if st.exhausted || st.seated {
			continue
		}
		if st.ptr >= len(b.Preferences) || b.Preferences[st.ptr] != from {
			continue
		}

		if ratio != nil {
			retained := new(big.Rat).Sub(big.NewRat(1, 1), ratio)
			retained.Mul(retained, st.weight)
			e.seatedWeight.Add(e.seatedWeight, retained)
			st.weight = new(big.Rat).Mul(st.weight, ratio)
		}

		st.ptr++
		e.advance(b, st)

		mv := models.BallotMove{Serial: b.Serial, Weight: ratWeight(st.weight)}
		if st.exhausted {
			mv.Exhausted = true
		} else {
			mv.To = b.Preferences[st.ptr]
		}
		moves = append(moves, mv)
	}
	return moves
}

// seatBallots freezes every ballot currently attributed to an elected
// candidate whose full tally is retained (elected exactly at quota, or by
// the remaining-seats rule). Their weight moves to the seated pool.
func (e *Engine) seatBallots(winner int) {
	for i, b := range e.store.Ballots() {
		st := e.states[i]
		if st.exhausted || st.seated {
			continue
		}
		if st.ptr >= len(b.Preferences) || b.Preferences[st.ptr] != winner {
			continue
		}
		st.seated = true
		e.seatedWeight.Add(e.seatedWeight, st.weight)
	}
}

// advance moves the ballot's active pointer past candidates that are no
// longer standing. A ballot that runs out of preferences exhausts; its
// current weight is banked exactly once.
func (e *Engine) advance(b models.Ballot, st *ballotState) {
	for st.ptr < len(b.Preferences) && !e.standing[b.Preferences[st.ptr]] {
		st.ptr++
	}
	if st.ptr >= len(b.Preferences) && !st.exhausted {
		st.exhausted = true
		e.exhaustedCount++
		e.exhaustedWeight.Add(e.exhaustedWeight, st.weight)
	}
}
