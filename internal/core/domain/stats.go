package domain

// PollStats is the read-only roll-up backing dashboard cards. Leader is the
// listed contestant currently holding the most votes, nil while nobody has
// received any.
type PollStats struct {
	PollID           int64       `json:"poll_id"`
	TotalVotes       int64       `json:"total_votes"`
	TotalContestants int64       `json:"total_contestants"`
	Leader           *Contestant `json:"leader,omitempty"`
}
