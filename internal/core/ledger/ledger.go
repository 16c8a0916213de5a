// Package ledger implements the poll/vote world state as a single
// deterministic state machine. Write operations are serialized by one
// mutex, the in-process stand-in for the total transaction ordering the
// surrounding submission layer provides: an operation either fully applies
// (state writes plus event emission) or rejects before its first write.
package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

type receiptKey struct {
	pollID  int64
	address string
}

// Ledger owns every poll, contestant, vote receipt and the append-only
// event log. Store and publisher are optional projections; nil means pure
// in-memory operation.
type Ledger struct {
	mu sync.RWMutex

	clock ports.Clock
	log   *zap.Logger
	store ports.LedgerStore
	pub   ports.EventPublisher

	nextPollID       int64
	polls            map[int64]*domain.Poll
	contestants      map[int64]map[int64]*domain.Contestant
	nextContestantID map[int64]int64
	receipts         map[receiptKey]*domain.VoteReceipt
	events           []*domain.Event
}

func New(clock ports.Clock, log *zap.Logger, store ports.LedgerStore, pub ports.EventPublisher) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		clock:            clock,
		log:              log,
		store:            store,
		pub:              pub,
		nextPollID:       1,
		polls:            make(map[int64]*domain.Poll),
		contestants:      make(map[int64]map[int64]*domain.Contestant),
		nextContestantID: make(map[int64]int64),
		receipts:         make(map[receiptKey]*domain.VoteReceipt),
	}
}

// FromSnapshot rebuilds a ledger from a persisted projection. Allocation
// ceilings are derived from the highest ids seen, so ids deleted polls or
// removed contestants once held are never handed out again.
func FromSnapshot(snap *ports.Snapshot, clock ports.Clock, log *zap.Logger, store ports.LedgerStore, pub ports.EventPublisher) *Ledger {
	l := New(clock, log, store, pub)
	for _, p := range snap.Polls {
		poll := *p
		l.polls[poll.ID] = &poll
		l.contestants[poll.ID] = make(map[int64]*domain.Contestant)
		l.nextContestantID[poll.ID] = 1
		if poll.ID >= l.nextPollID {
			l.nextPollID = poll.ID + 1
		}
	}
	for _, c := range snap.Contestants {
		contestant := *c
		l.contestants[contestant.PollID][contestant.ID] = &contestant
		if contestant.ID >= l.nextContestantID[contestant.PollID] {
			l.nextContestantID[contestant.PollID] = contestant.ID + 1
		}
	}
	for _, r := range snap.Receipts {
		receipt := *r
		l.receipts[receiptKey{receipt.PollID, receipt.Address}] = &receipt
	}
	l.events = make([]*domain.Event, 0, len(snap.Events))
	for _, ev := range snap.Events {
		event := *ev
		l.events = append(l.events, &event)
	}
	sort.Slice(l.events, func(i, j int) bool { return l.events[i].Seq < l.events[j].Seq })
	return l
}

// Snapshot copies the full world state in a form the store ports carry.
func (l *Ledger) Snapshot() *ports.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := &ports.Snapshot{}
	for id := int64(1); id < l.nextPollID; id++ {
		snap.Polls = append(snap.Polls, clonePoll(l.polls[id]))
		for cid := int64(1); cid < l.nextContestantID[id]; cid++ {
			snap.Contestants = append(snap.Contestants, cloneContestant(l.contestants[id][cid]))
		}
	}
	for _, r := range l.receipts {
		receipt := *r
		snap.Receipts = append(snap.Receipts, &receipt)
	}
	for _, ev := range l.events {
		event := *ev
		snap.Events = append(snap.Events, &event)
	}
	return snap
}

// pollByID resolves a poll regardless of its deleted flag. Ids are dense,
// so a map miss covers zero, negative and beyond-ceiling lookups alike.
func (l *Ledger) pollByID(pollID int64) (*domain.Poll, error) {
	poll, ok := l.polls[pollID]
	if !ok {
		return nil, domain.ErrInvalidPoll
	}
	return poll, nil
}

func (l *Ledger) now() int64 {
	return l.clock.Now().Unix()
}

// emit appends the next log entry. Callers hold the write lock and have
// already passed every validation.
func (l *Ledger) emit(kind domain.EventKind, pollID, contestantID int64, account, image, name string) *domain.Event {
	ev := &domain.Event{
		Seq:          uint64(len(l.events)) + 1,
		ID:           uuid.New(),
		Kind:         kind,
		PollID:       pollID,
		ContestantID: contestantID,
		Account:      account,
		Image:        image,
		Name:         name,
		EmittedAt:    l.now(),
	}
	l.events = append(l.events, ev)
	return ev
}

// project pushes a committed changeset to the optional store and publisher.
// It runs inside the critical section so the archive observes commits in
// ledger order. The in-memory state is authoritative; projection failures
// are logged, never rolled back.
func (l *Ledger) project(ctx context.Context, cs ports.Changeset) {
	if l.store != nil {
		if err := l.store.Commit(ctx, cs); err != nil {
			l.log.Error("ledger projection commit failed",
				zap.Uint64("seq", cs.Event.Seq),
				zap.String("kind", string(cs.Event.Kind)),
				zap.Error(err))
		}
	}
	if l.pub != nil {
		if err := l.pub.Publish(ctx, cs.Event); err != nil {
			l.log.Warn("event publish failed",
				zap.Uint64("seq", cs.Event.Seq),
				zap.Error(err))
		}
	}
}

func clonePoll(p *domain.Poll) *domain.Poll {
	cp := *p
	return &cp
}

func cloneContestant(c *domain.Contestant) *domain.Contestant {
	cc := *c
	return &cc
}
