package count

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/akontos/stvcount/internal/models"
)

// finalize assembles the result artifact: the ordered elected list, the
// full round log, exhausted-ballot totals, and the audit checksum. It
// performs no further counting.
func (e *Engine) finalize() (*models.Result, error) {
	sum, err := resultChecksum(e.rounds, e.elected)
	if err != nil {
		return nil, err
	}
	res := &models.Result{
		ElectionName:    e.cfg.Name,
		Institution:     e.cfg.Institution,
		Seats:           e.cfg.Seats,
		Quota:           e.quota,
		Elected:         e.elected,
		Rounds:          e.rounds,
		ExhaustedCount:  e.exhaustedCount,
		ExhaustedWeight: ratWeight(e.exhaustedWeight),
		Checksum:        sum,
	}
	e.log.Debug("count finished",
		"rounds", len(res.Rounds),
		"elected", len(res.Elected),
		"exhausted", res.ExhaustedCount)
	return res, nil
}

// resultChecksum hashes the canonical JSON encoding of the elected order
// and the round log. Identical inputs produce identical checksums, which
// is what makes the printed audit artifact verifiable.
func resultChecksum(rounds []models.Round, elected []models.ElectedCandidate) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(elected); err != nil {
		return "", err
	}
	if err := enc.Encode(rounds); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
