package domain

// VoteReceipt records that an address has voted in a poll. Receipts are
// never deleted and never reference the chosen contestant; the choice only
// survives as the counter increment on that contestant.
type VoteReceipt struct {
	PollID  int64  `json:"poll_id"`
	Address string `json:"address"`
	CastAt  int64  `json:"cast_at"`
}
