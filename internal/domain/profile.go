// Package domain contains pure, dependency-free domain models and types
// for the election engine.
package domain

import "fmt"

// Candidate identifies an alternative being voted on.
// Candidates are opaque: rules inspect no structure beyond equality and
// the enumeration order exposed by a Profile.
type Candidate int

// Voter identifies an agent submitting a ranked ballot.
// Voters are opaque keys into a Profile's rank lookups.
type Voter int

// Profile is the capability contract describing a single election
// instance: its candidates, its voters, and each voter's rank of each
// candidate. Any concrete data source (literal table, parsed fixture,
// generated instance) may implement it; rules are polymorphic over the
// contract and assume nothing beyond it.
//
// Invariant: for every voter, Rank is a bijection from the candidate set
// onto {0, ..., n-1} — a total strict ranking with no ties and no gaps.
// The invariant is assumed, not validated; violating it is undefined
// behavior for every rule.
//
// Implementations must be safe for concurrent reads if the same Profile
// is shared across concurrent rule evaluations. The rule layer never
// mutates a Profile.
type Profile interface {
	// Candidates returns the full candidate universe in a stable order.
	// The order doubles as the natural tie-break order.
	Candidates() []Candidate

	// Voters returns every distinct voter exactly once, in a stable order.
	Voters() []Voter

	// Rank returns the position of candidate c in voter v's ballot,
	// where 0 is the voter's most-preferred candidate and n-1 the least.
	Rank(c Candidate, v Voter) int
}

// Ballot is one voter's complete ranking, most-preferred first.
type Ballot struct {
	// Voter identifies who cast this ballot.
	Voter Voter `yaml:"voter" json:"voter"`

	// Ranking lists every candidate exactly once, most-preferred first.
	Ranking []Candidate `yaml:"ranking" json:"ranking"`
}

// TableProfile is a dense, immutable Profile backed by a rank table.
// It is the standard concrete profile used by the loader, the dataset
// generator, and tests.
type TableProfile struct {
	candidates []Candidate
	voters     []Voter
	// ranks maps voter -> candidate -> rank.
	ranks map[Voter]map[Candidate]int
}

var _ Profile = (*TableProfile)(nil)

// NewTableProfile builds a TableProfile from complete ballots over the
// given candidate universe. It checks ballot shape (distinct voters,
// ranking length, known candidates) because this is the system's data
// entry point; it does not verify the bijection invariant beyond that.
func NewTableProfile(candidates []Candidate, ballots []Ballot) (*TableProfile, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrEmptyElection)
	}

	universe := make(map[Candidate]struct{}, len(candidates))
	for _, c := range candidates {
		universe[c] = struct{}{}
	}

	p := &TableProfile{
		candidates: append([]Candidate(nil), candidates...),
		voters:     make([]Voter, 0, len(ballots)),
		ranks:      make(map[Voter]map[Candidate]int, len(ballots)),
	}

	for _, b := range ballots {
		if _, dup := p.ranks[b.Voter]; dup {
			return nil, fmt.Errorf("duplicate ballot for voter %d", b.Voter)
		}
		if len(b.Ranking) != len(candidates) {
			return nil, fmt.Errorf("ballot for voter %d ranks %d of %d candidates",
				b.Voter, len(b.Ranking), len(candidates))
		}

		ranks := make(map[Candidate]int, len(b.Ranking))
		for pos, c := range b.Ranking {
			if _, known := universe[c]; !known {
				return nil, fmt.Errorf("ballot for voter %d ranks unknown candidate %d", b.Voter, c)
			}
			ranks[c] = pos
		}

		p.voters = append(p.voters, b.Voter)
		p.ranks[b.Voter] = ranks
	}

	return p, nil
}

// Candidates returns the candidate universe in construction order.
// The returned slice is a copy and safe to modify.
func (p *TableProfile) Candidates() []Candidate {
	return append([]Candidate(nil), p.candidates...)
}

// Voters returns the voters in ballot order.
// The returned slice is a copy and safe to modify.
func (p *TableProfile) Voters() []Voter {
	return append([]Voter(nil), p.voters...)
}

// Rank returns voter v's rank of candidate c.
// Unknown voters or candidates return -1 rather than panicking; rules
// treat that as an invariant violation with undefined results.
func (p *TableProfile) Rank(c Candidate, v Voter) int {
	ranks, ok := p.ranks[v]
	if !ok {
		return -1
	}
	rank, ok := ranks[c]
	if !ok {
		return -1
	}
	return rank
}

// NumCandidates returns the size of the candidate universe.
func (p *TableProfile) NumCandidates() int { return len(p.candidates) }

// NumVoters returns the number of ballots cast.
func (p *TableProfile) NumVoters() int { return len(p.voters) }
