package ports

import "time"

// Clock is the ledger's authoritative time source. Every time-window check
// goes through it; callers never supply their own timestamps.
type Clock interface {
	Now() time.Time
}
