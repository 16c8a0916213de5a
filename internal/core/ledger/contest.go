package ledger

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

// Contest registers the caller's entrant in a poll. Any address may
// register, including before the voting window opens and including the same
// address more than once; only the poll's end time gates registration.
func (l *Ledger) Contest(ctx context.Context, input ports.ContestInput) (*domain.Contestant, *domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poll, err := l.pollByID(input.PollID)
	if err != nil {
		return nil, nil, err
	}
	if poll.Deleted {
		return nil, nil, domain.ErrPollDeleted
	}
	if l.now() > poll.EndsAt {
		return nil, nil, domain.ErrVotingClosed
	}

	contestant := &domain.Contestant{
		ID:      l.nextContestantID[poll.ID],
		PollID:  poll.ID,
		Image:   input.Image,
		Name:    input.Name,
		Account: input.Caller,
	}
	l.nextContestantID[poll.ID]++
	l.contestants[poll.ID][contestant.ID] = contestant
	poll.ContestantCount++

	ev := l.emit(domain.EventContestAdded, poll.ID, contestant.ID, contestant.Account, contestant.Image, contestant.Name)
	l.project(ctx, ports.Changeset{Poll: clonePoll(poll), Contestant: cloneContestant(contestant), Event: ev})

	return cloneContestant(contestant), ev, nil
}

// UpdateContestant rewrites an entrant's image and name. Director only; the
// registrant account is immutable.
func (l *Ledger) UpdateContestant(ctx context.Context, input ports.UpdateContestantInput) (*domain.Contestant, *domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poll, contestant, err := l.listedContestant(input.PollID, input.ContestantID)
	if err != nil {
		return nil, nil, err
	}
	if poll.Director != input.Caller {
		return nil, nil, domain.ErrNotDirector
	}

	contestant.Image = input.Image
	contestant.Name = input.Name

	ev := l.emit(domain.EventContestUpdated, poll.ID, contestant.ID, poll.Director, contestant.Image, contestant.Name)
	l.project(ctx, ports.Changeset{Contestant: cloneContestant(contestant), Event: ev})

	return cloneContestant(contestant), ev, nil
}

// DeleteContestant soft-removes an entrant. Director only, and only while
// no votes were cast for the entrant, so listed tallies always add up to
// the poll's vote count. ContestantCount does not decrement.
func (l *Ledger) DeleteContestant(ctx context.Context, caller string, pollID, contestantID int64) (*domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poll, contestant, err := l.listedContestant(pollID, contestantID)
	if err != nil {
		return nil, err
	}
	if poll.Director != caller {
		return nil, domain.ErrNotDirector
	}
	if contestant.Votes > 0 {
		return nil, domain.ErrContestantHasVotes
	}

	contestant.Removed = true

	ev := l.emit(domain.EventContestRemoved, poll.ID, contestant.ID, poll.Director, "", "")
	l.project(ctx, ports.Changeset{Contestant: cloneContestant(contestant), Event: ev})

	return ev, nil
}

// GetContestants lists the poll's non-removed contestants in id order. An
// empty list is not an error.
func (l *Ledger) GetContestants(ctx context.Context, pollID int64) ([]*domain.Contestant, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	poll, err := l.pollByID(pollID)
	if err != nil {
		return nil, err
	}

	contestants := make([]*domain.Contestant, 0, poll.ContestantCount)
	for id := int64(1); id < l.nextContestantID[poll.ID]; id++ {
		c := l.contestants[poll.ID][id]
		if c.Removed {
			continue
		}
		contestants = append(contestants, cloneContestant(c))
	}
	return contestants, nil
}

func (l *Ledger) GetContestant(ctx context.Context, pollID, contestantID int64) (*domain.Contestant, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, contestant, err := l.listedContestant(pollID, contestantID)
	if err != nil {
		return nil, err
	}
	return cloneContestant(contestant), nil
}

// listedContestant resolves a poll and one of its non-removed contestants.
// Callers hold at least the read lock.
func (l *Ledger) listedContestant(pollID, contestantID int64) (*domain.Poll, *domain.Contestant, error) {
	poll, err := l.pollByID(pollID)
	if err != nil {
		return nil, nil, err
	}
	if poll.Deleted {
		return nil, nil, domain.ErrPollDeleted
	}
	contestant, ok := l.contestants[poll.ID][contestantID]
	if !ok || contestant.Removed {
		return nil, nil, domain.ErrInvalidPoll
	}
	return poll, contestant, nil
}
