package models

// Candidate represents one registered candidate. Immutable once registered.
type Candidate struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Constituency string `json:"constituency,omitempty"`
}

// Ballot is one validated ranked-preference ballot. Preferences are
// candidate IDs in strictly descending preference order; the list may be
// empty (an immediately-exhausted ballot). Never mutated during counting.
type Ballot struct {
	Serial      int   `json:"serial"`
	Preferences []int `json:"preferences"`
}

// ElectionConfig holds the validated configuration for one count.
type ElectionConfig struct {
	Name              string `json:"name"`
	Institution       string `json:"institution,omitempty"`
	Seats             int    `json:"seats"`
	ConstituencyLimit int    `json:"constituency_limit"` // 0 = unlimited
	DroopQuota        bool   `json:"droop_quota"`
	TieBreakSeed      uint64 `json:"tie_break_seed"`
}

// Round actions recorded in the audit trail.
const (
	ActionElect           = "elect"
	ActionTransferSurplus = "transfer_surplus"
	ActionEliminate       = "eliminate"
	ActionBlock           = "block"
)

// CandidateTally is one standing candidate's tally in a round record.
// Weights are rendered as fixed six-decimal strings so the round log is
// byte-stable across runs.
type CandidateTally struct {
	CandidateID int    `json:"candidate_id"`
	Tally       string `json:"tally"`
}

// BallotMove records one ballot's weight moving during a transfer.
// To is the destination candidate, or omitted when the ballot exhausted.
type BallotMove struct {
	Serial    int    `json:"serial"`
	To        int    `json:"to,omitempty"`
	Weight    string `json:"weight"`
	Exhausted bool   `json:"exhausted,omitempty"`
}

// Round is one entry of the audit trail: a single action taken by the
// engine together with the tallies the action was decided on.
type Round struct {
	Number      int              `json:"number"`
	Quota       int              `json:"quota"`
	Action      string           `json:"action"`
	CandidateID int              `json:"candidate_id"`
	ByDefault   bool             `json:"by_default,omitempty"` // elected by the remaining-seats rule
	Tallies     []CandidateTally `json:"tallies"`
	Moves       []BallotMove     `json:"moves,omitempty"`
}

// ElectedCandidate is one elected candidate in election order.
type ElectedCandidate struct {
	CandidateID  int    `json:"candidate_id"`
	Name         string `json:"name"`
	Constituency string `json:"constituency,omitempty"`
	Round        int    `json:"round"`
}

// Result is the artifact handed to the external reporting layer.
type Result struct {
	CountID         string             `json:"count_id"`
	ElectionName    string             `json:"election_name"`
	Institution     string             `json:"institution,omitempty"`
	Seats           int                `json:"seats"`
	Quota           int                `json:"quota"`
	Elected         []ElectedCandidate `json:"elected"`
	Rounds          []Round            `json:"rounds"`
	ExhaustedCount  int                `json:"exhausted_count"`
	ExhaustedWeight string             `json:"exhausted_weight"`
	Checksum        string             `json:"checksum"`
}
