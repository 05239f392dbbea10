// Package electionfile parses the election documents produced by the
// election-administration layer: the election configuration, the candidate
// list grouped by school/constituency, and the ranked ballots.
package electionfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akontos/stvcount/internal/models"
)

// Vote is one ranked preference on a ballot
type Vote struct {
	Rank           int `json:"rank" yaml:"rank"`
	CandidateTmpID int `json:"candidateTmpId" yaml:"candidateTmpId"`
}

// Ballot is one ballot as submitted, votes in ascending rank order
type Ballot struct {
	SerialNumber int    `json:"ballotSerialNumber" yaml:"ballotSerialNumber"`
	Votes        []Vote `json:"votes" yaml:"votes"`
}

// Candidate is one candidate entry with its temporary identifier
type Candidate struct {
	CandidateTmpID int    `json:"candidateTmpId" yaml:"candidateTmpId"`
	FirstName      string `json:"firstName" yaml:"firstName"`
	LastName       string `json:"lastName" yaml:"lastName"`
	FatherName     string `json:"fatherName" yaml:"fatherName"`
}

// School groups candidates under one school/constituency
type School struct {
	Name       string      `json:"Name" yaml:"Name"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

// Election is the full election input document
type Election struct {
	Name         string   `json:"elName" yaml:"elName"`
	Institution  string   `json:"institution,omitempty" yaml:"institution,omitempty"`
	VotingStarts string   `json:"votingStarts,omitempty" yaml:"votingStarts,omitempty"`
	VotingEnds   string   `json:"votingEnds,omitempty" yaml:"votingEnds,omitempty"`
	Eligibles    int      `json:"numOfEligibles" yaml:"numOfEligibles"`
	ElectedLimit int      `json:"electedLimit" yaml:"electedLimit"`
	// DroopQuota defaults to true when absent; legacy documents omit it.
	DroopQuota   *bool    `json:"droopQuota,omitempty" yaml:"droopQuota,omitempty"`
	TieBreakSeed uint64   `json:"tieBreakSeed" yaml:"tieBreakSeed"`
	Schools      []School `json:"schools" yaml:"schools"`
	Ballots      []Ballot `json:"ballots" yaml:"ballots"`
}

// Parse decodes a JSON election document and validates it
func Parse(data []byte) (*Election, error) {
	var el Election
	if err := json.Unmarshal(data, &el); err != nil {
		return nil, fmt.Errorf("failed to decode election document: %w", err)
	}
	if err := el.Validate(); err != nil {
		return nil, err
	}
	return &el, nil
}

// ParseYAML decodes a YAML election document and validates it
func ParseYAML(data []byte) (*Election, error) {
	var el Election
	if err := yaml.Unmarshal(data, &el); err != nil {
		return nil, fmt.Errorf("failed to decode election document: %w", err)
	}
	if err := el.Validate(); err != nil {
		return nil, err
	}
	return &el, nil
}

// ParseFile reads an election document from disk, choosing the decoder by
// file extension (.yaml/.yml for YAML, anything else JSON).
func ParseFile(path string) (*Election, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read election file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Validate checks the document's wire-level consistency. Candidate and
// ballot semantics are re-checked by the counting engine; this layer only
// guarantees the document is well formed.
func (e *Election) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("election name is required")
	}
	if e.Eligibles < 1 {
		return fmt.Errorf("numOfEligibles must be a positive integer, got %d", e.Eligibles)
	}
	if e.ElectedLimit < 0 {
		return fmt.Errorf("electedLimit must not be negative, got %d", e.ElectedLimit)
	}
	if len(e.Schools) == 0 {
		return fmt.Errorf("at least one school with candidates is required")
	}

	tmpIDs := make(map[int]bool)
	for _, s := range e.Schools {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("school name is required")
		}
		for _, c := range s.Candidates {
			if tmpIDs[c.CandidateTmpID] {
				return fmt.Errorf("candidateTmpId %d appears twice", c.CandidateTmpID)
			}
			tmpIDs[c.CandidateTmpID] = true
			if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
				return fmt.Errorf("candidate %d has no name", c.CandidateTmpID)
			}
		}
	}
	if len(tmpIDs) == 0 {
		return fmt.Errorf("at least one candidate is required")
	}

	serials := make(map[int]bool)
	for _, b := range e.Ballots {
		if b.SerialNumber < 1 {
			return fmt.Errorf("ballot serial %d must be positive", b.SerialNumber)
		}
		if serials[b.SerialNumber] {
			return fmt.Errorf("ballot serial %d appears twice", b.SerialNumber)
		}
		serials[b.SerialNumber] = true

		for i, v := range b.Votes {
			// Ranks ascend from 1 with no gaps.
			if v.Rank != i+1 {
				return fmt.Errorf("ballot %d: rank %d at position %d", b.SerialNumber, v.Rank, i+1)
			}
			if !tmpIDs[v.CandidateTmpID] {
				return fmt.Errorf("ballot %d: unknown candidateTmpId %d", b.SerialNumber, v.CandidateTmpID)
			}
		}
	}
	return nil
}

// Config returns the validated election configuration
func (e *Election) Config() models.ElectionConfig {
	droop := true
	if e.DroopQuota != nil {
		droop = *e.DroopQuota
	}
	return models.ElectionConfig{
		Name:              e.Name,
		Institution:       e.Institution,
		Seats:             e.Eligibles,
		ConstituencyLimit: e.ElectedLimit,
		DroopQuota:        droop,
		TieBreakSeed:      e.TieBreakSeed,
	}
}

// Candidates flattens the school groups into engine candidates, ordered
// by temporary ID. The school name becomes the constituency tag.
func (e *Election) Candidates() []models.Candidate {
	var out []models.Candidate
	for _, s := range e.Schools {
		for _, c := range s.Candidates {
			out = append(out, models.Candidate{
				ID:           c.CandidateTmpID,
				Name:         displayName(c),
				Constituency: s.Name,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BallotList converts the wire ballots into engine ballots in document
// order, ranks already validated ascending.
func (e *Election) BallotList() []models.Ballot {
	out := make([]models.Ballot, 0, len(e.Ballots))
	for _, b := range e.Ballots {
		prefs := make([]int, 0, len(b.Votes))
		for _, v := range b.Votes {
			prefs = append(prefs, v.CandidateTmpID)
		}
		out = append(out, models.Ballot{Serial: b.SerialNumber, Preferences: prefs})
	}
	return out
}

// displayName joins the candidate's name parts the way the admin layer
// displays them, father name in parentheses when present.
func displayName(c Candidate) string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if f := strings.TrimSpace(c.FatherName); f != "" {
		name = fmt.Sprintf("%s (%s)", name, f)
	}
	return name
}
