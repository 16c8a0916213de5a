package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

const (
	director = "0xd1rec7or"
	stranger = "0x57ranger"
	voterA   = "0xv07er-a"
	voterB   = "0xv07er-b"
)

func newTestLedger(t *testing.T) (*Ledger, *ManualClock) {
	t.Helper()
	clock := NewManualClock(time.Unix(1_700_000_000, 0))
	return New(clock, nil, nil, nil), clock
}

// pollInput mirrors the windows the original dapp test suite uses: voting
// opens in a minute and closes in an hour.
func pollInput(clock *ManualClock) ports.CreatePollInput {
	now := clock.Now().Unix()
	return ports.CreatePollInput{
		Director:    director,
		Image:       "https://example.com/image.jpg",
		Title:       "Test Poll",
		Description: "A test poll description",
		StartsAt:    now + 60,
		EndsAt:      now + 3600,
	}
}

func TestCreatePoll(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	poll, ev, err := l.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)

	assert.Equal(t, int64(1), poll.ID)
	assert.Equal(t, "Test Poll", poll.Title)
	assert.Equal(t, director, poll.Director)
	assert.Equal(t, clock.Now().Unix(), poll.CreatedAt)
	assert.Zero(t, poll.VoteCount)
	assert.Zero(t, poll.ContestantCount)
	assert.False(t, poll.Deleted)

	require.NotNil(t, ev)
	assert.Equal(t, domain.EventPollCreated, ev.Kind)
	assert.Equal(t, uint64(1), ev.Seq)
	assert.Equal(t, int64(1), ev.PollID)
	assert.Equal(t, director, ev.Account)

	got, err := l.GetPoll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, poll, got)
}

func TestCreatePollInvalidTime(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()
	now := clock.Now().Unix()

	for _, in := range []ports.CreatePollInput{
		{Director: director, Title: "backwards", StartsAt: now + 3600, EndsAt: now + 60},
		{Director: director, Title: "equal", StartsAt: now + 60, EndsAt: now + 60},
	} {
		_, _, err := l.CreatePoll(ctx, in)
		require.ErrorIs(t, err, domain.ErrInvalidTime)
	}

	// Nothing was allocated.
	_, err := l.GetPoll(ctx, 1)
	require.ErrorIs(t, err, domain.ErrInvalidPoll)
	polls, err := l.GetPolls(ctx)
	require.NoError(t, err)
	assert.Empty(t, polls)
	events, err := l.Events(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUpdatePoll(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	_, _, err := l.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)

	now := clock.Now().Unix()
	update := ports.UpdatePollInput{
		Caller:      director,
		PollID:      1,
		Image:       "https://example.com/new-image.jpg",
		Title:       "Updated Poll",
		Description: "Updated description",
		StartsAt:    now + 120,
		EndsAt:      now + 7200,
	}

	poll, ev, err := l.UpdatePoll(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, "Updated Poll", poll.Title)
	assert.Equal(t, now+120, poll.StartsAt)
	assert.Equal(t, domain.EventPollUpdated, ev.Kind)

	t.Run("not director", func(t *testing.T) {
		hacked := update
		hacked.Caller = stranger
		hacked.Title = "Hacked Poll"
		_, _, err := l.UpdatePoll(ctx, hacked)
		require.ErrorIs(t, err, domain.ErrNotDirector)

		got, err := l.GetPoll(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Updated Poll", got.Title)
	})

	t.Run("unknown poll", func(t *testing.T) {
		missing := update
		missing.PollID = 999
		_, _, err := l.UpdatePoll(ctx, missing)
		require.ErrorIs(t, err, domain.ErrInvalidPoll)
	})

	t.Run("invalid time", func(t *testing.T) {
		bad := update
		bad.StartsAt, bad.EndsAt = bad.EndsAt, bad.StartsAt
		_, _, err := l.UpdatePoll(ctx, bad)
		require.ErrorIs(t, err, domain.ErrInvalidTime)
	})
}

func TestUpdatePollDeleted(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	_, _, err := l.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)
	_, err = l.DeletePoll(ctx, director, 1)
	require.NoError(t, err)

	now := clock.Now().Unix()
	_, _, err = l.UpdatePoll(ctx, ports.UpdatePollInput{
		Caller:   director,
		PollID:   1,
		Title:    "after the fact",
		StartsAt: now + 60,
		EndsAt:   now + 3600,
	})
	require.ErrorIs(t, err, domain.ErrPollDeleted)
}

func TestDeletePoll(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	_, _, err := l.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)

	t.Run("not director", func(t *testing.T) {
		_, err := l.DeletePoll(ctx, stranger, 1)
		require.ErrorIs(t, err, domain.ErrNotDirector)
	})

	ev, err := l.DeletePoll(ctx, director, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPollDeleted, ev.Kind)

	// Still readable by direct lookup, flagged deleted.
	poll, err := l.GetPoll(ctx, 1)
	require.NoError(t, err)
	assert.True(t, poll.Deleted)

	t.Run("second delete rejected", func(t *testing.T) {
		_, err := l.DeletePoll(ctx, director, 1)
		require.ErrorIs(t, err, domain.ErrPollDeleted)
	})
}

func TestGetPollsExcludesDeleted(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	for _, title := range []string{"Poll 1", "Poll 2", "Poll 3"} {
		in := pollInput(clock)
		in.Title = title
		_, _, err := l.CreatePoll(ctx, in)
		require.NoError(t, err)
	}
	_, err := l.DeletePoll(ctx, director, 2)
	require.NoError(t, err)

	polls, err := l.GetPolls(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 2)
	assert.Equal(t, "Poll 1", polls[0].Title)
	assert.Equal(t, "Poll 3", polls[1].Title)

	// A deleted poll's id is never reused.
	next, _, err := l.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)
	assert.Equal(t, int64(4), next.ID)
}

func TestNowTime(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	assert.Equal(t, clock.Now().Unix(), l.NowTime(ctx))
	clock.Advance(90 * time.Second)
	assert.Equal(t, clock.Now().Unix(), l.NowTime(ctx))
}

func TestGetPollStats(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	_, _, err := l.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)

	stats, err := l.GetPollStats(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVotes)
	assert.Zero(t, stats.TotalContestants)
	assert.Nil(t, stats.Leader)

	_, _, err = l.Contest(ctx, ports.ContestInput{Caller: "0xc1", PollID: 1, Name: "Contestant 1"})
	require.NoError(t, err)
	_, _, err = l.Contest(ctx, ports.ContestInput{Caller: "0xc2", PollID: 1, Name: "Contestant 2"})
	require.NoError(t, err)

	clock.Advance(61 * time.Second)
	_, err = l.Vote(ctx, ports.VoteInput{Caller: voterA, PollID: 1, ContestantID: 2})
	require.NoError(t, err)

	stats, err = l.GetPollStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVotes)
	assert.Equal(t, int64(2), stats.TotalContestants)
	require.NotNil(t, stats.Leader)
	assert.Equal(t, int64(2), stats.Leader.ID)

	// Ties resolve to the lowest contestant id.
	_, err = l.Vote(ctx, ports.VoteInput{Caller: voterB, PollID: 1, ContestantID: 1})
	require.NoError(t, err)
	stats, err = l.GetPollStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Leader.ID)

	_, err = l.GetPollStats(ctx, 404)
	require.ErrorIs(t, err, domain.ErrInvalidPoll)
}

func TestSnapshotRoundTrip(t *testing.T) {
	l, clock := newTestLedger(t)
	ctx := context.Background()

	_, _, err := l.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)
	_, _, err = l.Contest(ctx, ports.ContestInput{Caller: "0xc1", PollID: 1, Name: "Contestant 1"})
	require.NoError(t, err)
	clock.Advance(61 * time.Second)
	_, err = l.Vote(ctx, ports.VoteInput{Caller: voterA, PollID: 1, ContestantID: 1})
	require.NoError(t, err)
	_, err = l.DeletePoll(ctx, director, 1)
	require.NoError(t, err)

	restored := FromSnapshot(l.Snapshot(), clock, nil, nil, nil)
	require.NoError(t, restored.CheckInvariants())

	poll, err := restored.GetPoll(ctx, 1)
	require.NoError(t, err)
	assert.True(t, poll.Deleted)
	assert.Equal(t, int64(1), poll.VoteCount)

	voted, err := restored.HasAddressVoted(ctx, 1, voterA)
	require.NoError(t, err)
	assert.True(t, voted)

	events, err := restored.Events(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, domain.EventPollDeleted, events[3].Kind)

	// Id allocation resumes past everything the snapshot held.
	next, _, err := restored.CreatePoll(ctx, pollInput(clock))
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}
