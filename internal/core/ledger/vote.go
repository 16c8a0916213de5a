package ledger

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

// Vote casts the caller's single vote in a poll. Checks run in a fixed
// order and all writes follow the last check, so a rejected vote leaves the
// world state untouched: receipt creation, contestant tally and poll tally
// land together or not at all.
func (l *Ledger) Vote(ctx context.Context, input ports.VoteInput) (*domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poll, err := l.pollByID(input.PollID)
	if err != nil {
		return nil, err
	}
	if poll.Deleted {
		return nil, domain.ErrPollDeleted
	}
	now := l.now()
	if now < poll.StartsAt {
		return nil, domain.ErrVotingNotStarted
	}
	if now > poll.EndsAt {
		return nil, domain.ErrVotingClosed
	}
	contestant, ok := l.contestants[poll.ID][input.ContestantID]
	if !ok || contestant.Removed {
		return nil, domain.ErrInvalidPoll
	}
	key := receiptKey{poll.ID, input.Caller}
	if _, voted := l.receipts[key]; voted {
		return nil, domain.ErrAlreadyVoted
	}

	receipt := &domain.VoteReceipt{PollID: poll.ID, Address: input.Caller, CastAt: now}
	l.receipts[key] = receipt
	contestant.Votes++
	poll.VoteCount++

	ev := l.emit(domain.EventVoted, poll.ID, contestant.ID, input.Caller, "", "")
	rc := *receipt
	l.project(ctx, ports.Changeset{
		Poll:       clonePoll(poll),
		Contestant: cloneContestant(contestant),
		Receipt:    &rc,
		Event:      ev,
	})

	return ev, nil
}

// HasAddressVoted is a read-only probe; an unknown poll simply reads as
// "has not voted".
func (l *Ledger) HasAddressVoted(ctx context.Context, pollID int64, address string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, voted := l.receipts[receiptKey{pollID, address}]
	return voted, nil
}
