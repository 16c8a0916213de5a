package ledger

import "fmt"

// CheckInvariants re-verifies the consistency rules every operation is
// supposed to preserve: dense sequential ids, per-poll tallies matching the
// summed contestant votes, receipt totals matching the vote totals, and
// valid time windows. Used by tests and by the audit command after a
// replay.
func (l *Ledger) CheckInvariants() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var totalVotes, totalReceipts int64
	for id := int64(1); id < l.nextPollID; id++ {
		poll, ok := l.polls[id]
		if !ok {
			return fmt.Errorf("poll ids not dense: %d missing below ceiling %d", id, l.nextPollID)
		}
		if poll.StartsAt >= poll.EndsAt {
			return fmt.Errorf("poll %d: starts_at %d not before ends_at %d", id, poll.StartsAt, poll.EndsAt)
		}

		var sum, count int64
		for cid := int64(1); cid < l.nextContestantID[id]; cid++ {
			c, ok := l.contestants[id][cid]
			if !ok {
				return fmt.Errorf("poll %d: contestant ids not dense, %d missing", id, cid)
			}
			if c.Votes < 0 {
				return fmt.Errorf("poll %d contestant %d: negative votes", id, cid)
			}
			sum += c.Votes
			count++
		}
		if sum != poll.VoteCount {
			return fmt.Errorf("poll %d: contestant votes sum %d != vote count %d", id, sum, poll.VoteCount)
		}
		if count != poll.ContestantCount {
			return fmt.Errorf("poll %d: contestant arena size %d != contestant count %d", id, count, poll.ContestantCount)
		}
		totalVotes += poll.VoteCount
	}

	for key := range l.receipts {
		if _, ok := l.polls[key.pollID]; !ok {
			return fmt.Errorf("receipt references unknown poll %d", key.pollID)
		}
		totalReceipts++
	}
	if totalReceipts != totalVotes {
		return fmt.Errorf("receipt total %d != vote total %d", totalReceipts, totalVotes)
	}

	for i, ev := range l.events {
		if ev.Seq != uint64(i)+1 {
			return fmt.Errorf("event log not dense at index %d: seq %d", i, ev.Seq)
		}
	}
	return nil
}
