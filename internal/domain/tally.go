package domain

// Tally is an insertion-ordered score table mapping candidates to
// accumulated points. Iteration follows the order candidates were added,
// so winner extraction is deterministic regardless of map semantics.
// A Tally is transient: built fresh per rule invocation and discarded
// once the winner is computed.
type Tally struct {
	order  []Candidate
	scores map[Candidate]int
}

// NewTally creates a Tally with every candidate initialized to zero,
// preserving the given enumeration order.
func NewTally(candidates []Candidate) *Tally {
	t := &Tally{
		order:  append([]Candidate(nil), candidates...),
		scores: make(map[Candidate]int, len(candidates)),
	}
	for _, c := range candidates {
		t.scores[c] = 0
	}
	return t
}

// Add accumulates points for a candidate. Candidates not present at
// construction are ignored: a scoring step can only move scores inside
// the declared universe.
func (t *Tally) Add(c Candidate, points int) {
	if _, ok := t.scores[c]; !ok {
		return
	}
	t.scores[c] += points
}

// Score returns the accumulated points for a candidate.
func (t *Tally) Score(c Candidate) int { return t.scores[c] }

// Len returns the number of candidates in the table.
func (t *Tally) Len() int { return len(t.order) }

// Max returns the highest accumulated score.
// The second return is false when the table is empty.
func (t *Tally) Max() (int, bool) {
	if len(t.order) == 0 {
		return 0, false
	}
	max := t.scores[t.order[0]]
	for _, c := range t.order[1:] {
		if s := t.scores[c]; s > max {
			max = s
		}
	}
	return max, true
}

// Min returns the lowest accumulated score.
// The second return is false when the table is empty.
func (t *Tally) Min() (int, bool) {
	if len(t.order) == 0 {
		return 0, false
	}
	min := t.scores[t.order[0]]
	for _, c := range t.order[1:] {
		if s := t.scores[c]; s < min {
			min = s
		}
	}
	return min, true
}

// Winners returns every candidate holding the maximum score, in table
// order. An empty table yields an empty set.
func (t *Tally) Winners() []Candidate {
	max, ok := t.Max()
	if !ok {
		return nil
	}
	var winners []Candidate
	for _, c := range t.order {
		if t.scores[c] == max {
			winners = append(winners, c)
		}
	}
	return winners
}

// Snapshot returns every (candidate, score) pair in table order.
func (t *Tally) Snapshot() []CandidateScore {
	out := make([]CandidateScore, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, CandidateScore{Candidate: c, Score: t.scores[c]})
	}
	return out
}

// CandidateScore pairs a candidate with an accumulated score.
type CandidateScore struct {
	Candidate Candidate `json:"candidate"`
	Score     int       `json:"score"`
}

// TieBreak resolves a tie deterministically: it returns the first
// candidate in order that also appears in winners. The meaning of order
// is the caller's choice (natural candidate enumeration, a designated
// agent's ranking, ...); the primitive itself carries no rule logic.
// Calling it with an empty winner set is a contract violation and
// returns ErrNoWinner.
func TieBreak(order, winners []Candidate) (Candidate, error) {
	if len(winners) == 0 {
		return 0, ErrNoWinner
	}
	wset := make(map[Candidate]struct{}, len(winners))
	for _, w := range winners {
		wset[w] = struct{}{}
	}
	for _, c := range order {
		if _, ok := wset[c]; ok {
			return c, nil
		}
	}
	return 0, ErrNoWinner
}
