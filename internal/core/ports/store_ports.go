package ports

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

// Changeset carries the full effect of one committed write operation.
// Fields not touched by the operation are nil; Event is always set.
type Changeset struct {
	Poll       *domain.Poll
	Contestant *domain.Contestant
	Receipt    *domain.VoteReceipt
	Event      *domain.Event
}

// Snapshot is the persisted world state used to rebuild the ledger on boot.
type Snapshot struct {
	Polls       []*domain.Poll
	Contestants []*domain.Contestant
	Receipts    []*domain.VoteReceipt
	Events      []*domain.Event
}

// LedgerStore is a write-behind projection of the ledger. Commits arrive in
// ledger order, one per successful write operation.
type LedgerStore interface {
	Commit(ctx context.Context, cs Changeset) error
	Load(ctx context.Context) (*Snapshot, error)
}

// EventPublisher fans committed events out to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev *domain.Event) error
}
