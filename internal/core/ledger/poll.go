package ledger

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

// CreatePoll allocates the next poll id and records the caller as the
// poll's director. The ledger does not require StartsAt to be in the
// future; clients may impose that on top.
func (l *Ledger) CreatePoll(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, *domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if input.StartsAt >= input.EndsAt {
		return nil, nil, domain.ErrInvalidTime
	}

	poll := &domain.Poll{
		ID:          l.nextPollID,
		Image:       input.Image,
		Title:       input.Title,
		Description: input.Description,
		Director:    input.Director,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		CreatedAt:   l.now(),
	}
	l.nextPollID++
	l.polls[poll.ID] = poll
	l.contestants[poll.ID] = make(map[int64]*domain.Contestant)
	l.nextContestantID[poll.ID] = 1

	ev := l.emit(domain.EventPollCreated, poll.ID, 0, poll.Director, "", "")
	l.project(ctx, ports.Changeset{Poll: clonePoll(poll), Event: ev})

	return clonePoll(poll), ev, nil
}

// UpdatePoll overwrites every mutable field. The deleted flag is terminal,
// so updates against a deleted poll are rejected.
func (l *Ledger) UpdatePoll(ctx context.Context, input ports.UpdatePollInput) (*domain.Poll, *domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poll, err := l.pollByID(input.PollID)
	if err != nil {
		return nil, nil, err
	}
	if poll.Director != input.Caller {
		return nil, nil, domain.ErrNotDirector
	}
	if poll.Deleted {
		return nil, nil, domain.ErrPollDeleted
	}
	if input.StartsAt >= input.EndsAt {
		return nil, nil, domain.ErrInvalidTime
	}

	poll.Image = input.Image
	poll.Title = input.Title
	poll.Description = input.Description
	poll.StartsAt = input.StartsAt
	poll.EndsAt = input.EndsAt

	ev := l.emit(domain.EventPollUpdated, poll.ID, 0, poll.Director, "", "")
	l.project(ctx, ports.Changeset{Poll: clonePoll(poll), Event: ev})

	return clonePoll(poll), ev, nil
}

// DeletePoll flips the one-way deleted flag. Deleting twice fails, since
// the first delete already made the poll reject every mutation.
func (l *Ledger) DeletePoll(ctx context.Context, caller string, pollID int64) (*domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poll, err := l.pollByID(pollID)
	if err != nil {
		return nil, err
	}
	if poll.Director != caller {
		return nil, domain.ErrNotDirector
	}
	if poll.Deleted {
		return nil, domain.ErrPollDeleted
	}

	poll.Deleted = true

	ev := l.emit(domain.EventPollDeleted, poll.ID, 0, poll.Director, "", "")
	l.project(ctx, ports.Changeset{Poll: clonePoll(poll), Event: ev})

	return ev, nil
}

// GetPoll returns the poll regardless of its deleted flag.
func (l *Ledger) GetPoll(ctx context.Context, pollID int64) (*domain.Poll, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	poll, err := l.pollByID(pollID)
	if err != nil {
		return nil, err
	}
	return clonePoll(poll), nil
}

// GetPolls lists non-deleted polls in ascending id order.
func (l *Ledger) GetPolls(ctx context.Context) ([]*domain.Poll, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	polls := make([]*domain.Poll, 0, len(l.polls))
	for id := int64(1); id < l.nextPollID; id++ {
		poll := l.polls[id]
		if poll.Deleted {
			continue
		}
		polls = append(polls, clonePoll(poll))
	}
	return polls, nil
}

// GetPollStats rolls up the poll's tallies. The leader is the listed
// contestant with the most votes, lowest id winning ties.
func (l *Ledger) GetPollStats(ctx context.Context, pollID int64) (*domain.PollStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	poll, err := l.pollByID(pollID)
	if err != nil {
		return nil, err
	}

	stats := &domain.PollStats{
		PollID:           poll.ID,
		TotalVotes:       poll.VoteCount,
		TotalContestants: poll.ContestantCount,
	}
	for id := int64(1); id < l.nextContestantID[poll.ID]; id++ {
		c := l.contestants[poll.ID][id]
		if c.Removed || c.Votes == 0 {
			continue
		}
		if stats.Leader == nil || c.Votes > stats.Leader.Votes {
			stats.Leader = cloneContestant(c)
		}
	}
	return stats, nil
}

// NowTime exposes the ledger clock so clients can avoid skew against their
// local clocks.
func (l *Ledger) NowTime(ctx context.Context) int64 {
	return l.now()
}
