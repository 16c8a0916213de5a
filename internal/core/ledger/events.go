package ledger

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

// Events returns log entries with a sequence number greater than sinceSeq,
// in order. Consumers poll this to refresh cached views.
func (l *Ledger) Events(ctx context.Context, sinceSeq uint64) ([]*domain.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if sinceSeq >= uint64(len(l.events)) {
		return []*domain.Event{}, nil
	}
	tail := l.events[sinceSeq:]
	out := make([]*domain.Event, 0, len(tail))
	for _, ev := range tail {
		event := *ev
		out = append(out, &event)
	}
	return out, nil
}
