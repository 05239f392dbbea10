package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/akontos/stvcount/internal/count"
	"github.com/akontos/stvcount/internal/errors"
	"github.com/akontos/stvcount/internal/logger"
	"github.com/akontos/stvcount/internal/models"
	"github.com/akontos/stvcount/pkg/electionfile"
)

// ElectionService runs full count invocations. Concurrent counts for
// different elections share no mutable state: every RunCount builds its
// own registry, ballot store and engine.
type ElectionService struct {
	log    logger.Logger
	budget time.Duration // 0 = no time budget
}

// NewElectionService creates a new ElectionService
func NewElectionService(log logger.Logger) *ElectionService {
	return &ElectionService{log: log}
}

// SetBudget sets an overall time budget applied to each count invocation.
// A count exceeding the budget aborts with a fatal timeout error.
func (s *ElectionService) SetBudget(budget time.Duration) {
	s.budget = budget
}

// RunCount executes one count for the given election document and returns
// the result artifact, tagged with a fresh count invocation ID.
func (s *ElectionService) RunCount(ctx context.Context, el *electionfile.Election) (*models.Result, error) {
	cfg := el.Config()
	countID := uuid.NewString()
	log := s.log.With("election", cfg.Name, "count_id", countID)

	reg := count.NewRegistry()
	for _, c := range el.Candidates() {
		if _, err := reg.Register(c.ID, c.Name, c.Constituency); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid candidate list")
		}
	}

	store := count.NewStore(reg)
	for _, b := range el.BallotList() {
		if _, err := store.Ingest(b.Serial, b.Preferences); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid ballot")
		}
	}

	if s.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.budget)
		defer cancel()
	}

	log.Info("count starting",
		"candidates", reg.Len(),
		"ballots", store.Len(),
		"seats", cfg.Seats)

	engine := count.NewEngine(log, reg, store, cfg)
	res, err := engine.Count(ctx)
	if err != nil {
		return nil, classify(err)
	}
	res.CountID = countID

	log.Info("count finished",
		"quota", res.Quota,
		"rounds", len(res.Rounds),
		"elected", len(res.Elected),
		"exhausted", res.ExhaustedCount)
	return res, nil
}

// classify maps engine errors onto the application error kinds. Integrity
// and timeout failures stay fatal; configuration problems are recoverable
// by the caller.
func classify(err error) error {
	var integrity *count.CountIntegrityError
	if stderrors.As(err, &integrity) {
		return errors.Integrity(err)
	}
	var timeout *count.TimeoutError
	if stderrors.As(err, &timeout) {
		return errors.Timeout(err)
	}
	var insufficient *count.InsufficientCandidatesError
	if stderrors.As(err, &insufficient) {
		return errors.Wrap(err, errors.ErrConfig, "invalid election configuration")
	}
	if stderrors.Is(err, count.ErrEmptyElectorate) || stderrors.Is(err, count.ErrSeatsNotPositive) {
		return errors.Wrap(err, errors.ErrConfig, "invalid election configuration")
	}
	return errors.Internal(err)
}
