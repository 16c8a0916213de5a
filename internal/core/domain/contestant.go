package domain

// Contestant is an entrant in a single poll. IDs are sequential per poll,
// starting at 1. Account is the registrant and is immutable; Removed is a
// one-way soft flag set through the director-only admin path.
type Contestant struct {
	ID      int64  `json:"id"`
	PollID  int64  `json:"poll_id"`
	Image   string `json:"image"`
	Name    string `json:"name"`
	Account string `json:"account"`
	Votes   int64  `json:"votes"`
	Removed bool   `json:"removed"`
}
