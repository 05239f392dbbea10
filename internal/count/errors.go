package count

import "fmt"

// Count errors
var (
	ErrEmptyElectorate  = &CountError{Message: "no valid ballots"}
	ErrRegistryFrozen   = &CountError{Message: "candidate registry is frozen"}
	ErrSeatsNotPositive = &CountError{Message: "seats must be a positive integer"}
)

// CountError represents a count-level error
type CountError struct {
	Message string
}

func (e *CountError) Error() string {
	return e.Message
}

// DuplicateCandidateError reports a candidate ID registered twice
type DuplicateCandidateError struct {
	ID int
}

func (e *DuplicateCandidateError) Error() string {
	return fmt.Sprintf("candidate %d already registered", e.ID)
}

// UnknownCandidateError reports a lookup of an unregistered candidate
type UnknownCandidateError struct {
	ID int
}

func (e *UnknownCandidateError) Error() string {
	return fmt.Sprintf("unknown candidate %d", e.ID)
}

// InvalidBallotError reports a ballot rejected at ingestion
type InvalidBallotError struct {
	Serial int
	Reason string
}

func (e *InvalidBallotError) Error() string {
	return fmt.Sprintf("ballot %d: %s", e.Serial, e.Reason)
}

// InsufficientCandidatesError reports fewer candidates than seats
type InsufficientCandidatesError struct {
	Candidates int
	Seats      int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("%d candidates cannot fill %d seats", e.Candidates, e.Seats)
}

// CountIntegrityError reports a violated counting invariant. Fatal: the
// count aborts and no partial result is reported.
type CountIntegrityError struct {
	Round  int
	Detail string
}

func (e *CountIntegrityError) Error() string {
	return fmt.Sprintf("round %d: count integrity violated: %s", e.Round, e.Detail)
}

// TimeoutError reports that the caller's time budget expired mid-count.
// Fatal: the count aborts and no partial result is reported.
type TimeoutError struct {
	Round int
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("round %d: count aborted: %v", e.Round, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}
