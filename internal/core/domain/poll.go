package domain

// Poll is a time-bounded voting event. Timestamps are unix seconds as
// observed through the ledger clock, never a caller-supplied time.
type Poll struct {
	ID              int64  `json:"id"`
	Image           string `json:"image"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Director        string `json:"director"`
	StartsAt        int64  `json:"starts_at"`
	EndsAt          int64  `json:"ends_at"`
	CreatedAt       int64  `json:"created_at"`
	VoteCount       int64  `json:"vote_count"`
	ContestantCount int64  `json:"contestant_count"`
	Deleted         bool   `json:"deleted"`
}
