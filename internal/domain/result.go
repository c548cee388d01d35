package domain

// Result is the outcome of evaluating a single rule against a profile.
type Result struct {
	// ID identifies the result, derived from the producing rule's name.
	ID string `json:"id"`

	// Winner is the elected candidate. It is nil only when a rule
	// legitimately produces no winner (STV's simultaneous full
	// elimination); every other path either elects or fails with an
	// error.
	Winner *Candidate `json:"winner,omitempty"`

	// WinningScore is the score held by the winner under the producing
	// rule. Zero for rules that do not score (dictatorship).
	WinningScore int `json:"winning_score"`

	// TiedWith lists every candidate that shared the winning score
	// before tie-breaking, in candidate order. Empty when the winner was
	// unique or the rule does not score.
	TiedWith []Candidate `json:"tied_with,omitempty"`

	// Rounds is the number of elimination rounds performed. Zero for
	// single-pass rules.
	Rounds int `json:"rounds,omitempty"`

	// Scores is the final score table in candidate order, when the rule
	// produces one.
	Scores []CandidateScore `json:"scores,omitempty"`
}
