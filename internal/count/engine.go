package count

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/akontos/stvcount/internal/logger"
	"github.com/akontos/stvcount/internal/models"
)

// Engine drives one count: tally, elect check, surplus transfer,
// termination, elimination, until all seats are filled or no candidate
// remains standing. A single Engine runs a single count invocation; it is
// sequential and deterministic, and shares no state with other counts.
type Engine struct {
	log   logger.Logger
	reg   *Registry
	store *Store
	cfg   models.ElectionConfig

	quota    int
	quotaRat *big.Rat

	states   []*ballotState
	standing map[int]bool
	elected  []models.ElectedCandidate
	rounds   []models.Round
	roundNum int

	totalValid      *big.Rat
	seatedWeight    *big.Rat
	exhaustedWeight *big.Rat
	exhaustedCount  int
}

// NewEngine creates an engine for one count invocation
func NewEngine(log logger.Logger, reg *Registry, store *Store, cfg models.ElectionConfig) *Engine {
	return &Engine{log: log, reg: reg, store: store, cfg: cfg}
}

// Count runs the full count and returns the result artifact. The context
// carries the caller's optional time budget: expiry between rounds aborts
// the count with a fatal TimeoutError and no partial result.
func (e *Engine) Count(ctx context.Context) (*models.Result, error) {
	quota, err := ComputeQuota(e.store.Len(), e.reg.Len(), e.cfg.Seats, e.cfg.DroopQuota)
	if err != nil {
		return nil, err
	}
	e.quota = quota
	e.quotaRat = big.NewRat(int64(quota), 1)
	e.reg.Freeze()

	e.states = newBallotStates(e.store.Len())
	e.standing = make(map[int]bool, e.reg.Len())
	for _, id := range e.reg.IDs() {
		e.standing[id] = true
	}
	e.totalValid = big.NewRat(int64(e.store.Len()), 1)
	e.seatedWeight = new(big.Rat)
	e.exhaustedWeight = new(big.Rat)

	e.log.Debug("count starting",
		"candidates", e.reg.Len(),
		"ballots", e.store.Len(),
		"seats", e.cfg.Seats,
		"quota", quota)

	for {
		if err := ctx.Err(); err != nil {
			return nil, &TimeoutError{Round: e.roundNum + 1, Err: err}
		}

		tallies := e.retally()
		if err := e.checkConservation(tallies); err != nil {
			return nil, err
		}

		// Elect check: highest standing candidate at or above quota.
		if winner, ok := e.quotaWinner(tallies); ok {
			cand, err := e.reg.Get(winner)
			if err != nil {
				return nil, err
			}
			tally := tallies[winner]

			if !canElect(cand, e.elected, e.cfg.ConstituencyLimit) {
				// Constituency at its limit: the candidate cannot hold a
				// seat, so its full weight forwards to next preferences.
				e.roundNum++
				delete(e.standing, winner)
				moves := e.transferFrom(winner, nil)
				e.appendRound(models.ActionBlock, winner, false, tallies, moves)
				e.log.Debug("candidate blocked", "candidate", winner, "constituency", cand.Constituency)
				continue
			}

			e.roundNum++
			delete(e.standing, winner)
			e.elected = append(e.elected, models.ElectedCandidate{
				CandidateID:  winner,
				Name:         cand.Name,
				Constituency: cand.Constituency,
				Round:        e.roundNum,
			})
			e.appendRound(models.ActionElect, winner, false, tallies, nil)
			e.log.Debug("candidate elected", "candidate", winner, "tally", ratWeight(tally))

			if surplus := new(big.Rat).Sub(tally, e.quotaRat); surplus.Sign() > 0 {
				// Gregory fractional transfer: each contributing ballot
				// moves on scaled by surplus/tally.
				ratio := new(big.Rat).Quo(surplus, tally)
				e.roundNum++
				moves := e.transferFrom(winner, ratio)
				e.appendRound(models.ActionTransferSurplus, winner, false, tallies, moves)
			} else {
				e.seatBallots(winner)
			}

			if e.terminal() {
				break
			}
			continue
		}

		if e.terminal() {
			break
		}
		if len(e.standing)+len(e.elected) <= e.cfg.Seats {
			e.electRemaining(tallies)
			break
		}

		// Nobody crossed quota: eliminate the lowest standing candidate.
		loser := e.lowestStanding(tallies)
		e.roundNum++
		delete(e.standing, loser)
		moves := e.transferFrom(loser, nil)
		e.appendRound(models.ActionEliminate, loser, false, tallies, moves)
		e.log.Debug("candidate eliminated", "candidate", loser, "tally", ratWeight(tallies[loser]))
	}

	return e.finalize()
}

// terminal reports whether the count must stop
func (e *Engine) terminal() bool {
	return len(e.elected) == e.cfg.Seats || len(e.standing) == 0
}

// retally attributes every active ballot's weight to its current standing
// preference. Ballots whose remaining preferences are all for non-standing
// candidates exhaust here and stop contributing.
func (e *Engine) retally() map[int]*big.Rat {
	tallies := make(map[int]*big.Rat, len(e.standing))
	for id := range e.standing {
		tallies[id] = new(big.Rat)
	}
	for i, b := range e.store.Ballots() {
		st := e.states[i]
		if st.exhausted || st.seated {
			continue
		}
		e.advance(b, st)
		if st.exhausted {
			continue
		}
		t := tallies[b.Preferences[st.ptr]]
		t.Add(t, st.weight)
	}
	return tallies
}

// checkConservation verifies the conservation law at the round boundary:
// active weight + seated weight + exhausted weight equals the total valid
// weight. Arithmetic is exact, so any mismatch is fatal.
func (e *Engine) checkConservation(tallies map[int]*big.Rat) error {
	sum := new(big.Rat)
	for _, t := range tallies {
		sum.Add(sum, t)
	}
	sum.Add(sum, e.seatedWeight)
	sum.Add(sum, e.exhaustedWeight)
	if sum.Cmp(e.totalValid) != 0 {
		return &CountIntegrityError{
			Round:  e.roundNum + 1,
			Detail: fmt.Sprintf("attributed weight %s does not equal valid weight %s", sum.RatString(), e.totalValid.RatString()),
		}
	}
	return nil
}

// quotaWinner returns the standing candidate with the highest tally at or
// above quota, if any. Ties break in the deterministic tie-break order.
func (e *Engine) quotaWinner(tallies map[int]*big.Rat) (int, bool) {
	var crossed []int
	for id := range e.standing {
		if tallies[id].Cmp(e.quotaRat) >= 0 {
			crossed = append(crossed, id)
		}
	}
	if len(crossed) == 0 {
		return 0, false
	}
	orderTied(crossed, e.cfg.TieBreakSeed, e.roundNum+1)
	sort.SliceStable(crossed, func(i, j int) bool {
		return tallies[crossed[i]].Cmp(tallies[crossed[j]]) > 0
	})
	return crossed[0], true
}

// lowestStanding returns the standing candidate with the lowest tally,
// ties broken in the deterministic tie-break order.
func (e *Engine) lowestStanding(tallies map[int]*big.Rat) int {
	ids := make([]int, 0, len(e.standing))
	for id := range e.standing {
		ids = append(ids, id)
	}
	orderTied(ids, e.cfg.TieBreakSeed, e.roundNum+1)
	sort.SliceStable(ids, func(i, j int) bool {
		return tallies[ids[i]].Cmp(tallies[ids[j]]) < 0
	})
	return ids[0]
}

// electRemaining elects the remaining standing candidates by default, in
// descending tally order, without requiring quota. Reached when the
// standing candidates can no longer be denied seats.
func (e *Engine) electRemaining(tallies map[int]*big.Rat) {
	ids := make([]int, 0, len(e.standing))
	for id := range e.standing {
		ids = append(ids, id)
	}
	orderTied(ids, e.cfg.TieBreakSeed, e.roundNum+1)
	sort.SliceStable(ids, func(i, j int) bool {
		return tallies[ids[i]].Cmp(tallies[ids[j]]) > 0
	})

	for _, id := range ids {
		if len(e.elected) == e.cfg.Seats {
			break
		}
		cand, err := e.reg.Get(id)
		if err != nil {
			continue
		}
		e.roundNum++
		delete(e.standing, id)
		e.elected = append(e.elected, models.ElectedCandidate{
			CandidateID:  id,
			Name:         cand.Name,
			Constituency: cand.Constituency,
			Round:        e.roundNum,
		})
		e.appendRound(models.ActionElect, id, true, tallies, nil)
		e.seatBallots(id)
		e.log.Debug("candidate elected by default", "candidate", id, "tally", ratWeight(tallies[id]))
	}
}

// appendRound records one audit-trail entry with the tallies the action
// was decided on, rendered in ascending candidate order.
func (e *Engine) appendRound(action string, candidateID int, byDefault bool, tallies map[int]*big.Rat, moves []models.BallotMove) {
	r := models.Round{
		Number:      e.roundNum,
		Quota:       e.quota,
		Action:      action,
		CandidateID: candidateID,
		ByDefault:   byDefault,
		Moves:       moves,
	}
	ids := make([]int, 0, len(tallies))
	for id := range tallies {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		r.Tallies = append(r.Tallies, models.CandidateTally{CandidateID: id, Tally: ratWeight(tallies[id])})
	}
	e.rounds = append(e.rounds, r)
}
