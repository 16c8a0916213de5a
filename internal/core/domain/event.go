package domain

import "github.com/google/uuid"

type EventKind string

const (
	EventPollCreated    EventKind = "poll_created"
	EventPollUpdated    EventKind = "poll_updated"
	EventPollDeleted    EventKind = "poll_deleted"
	EventContestAdded   EventKind = "contest_added"
	EventContestUpdated EventKind = "contest_updated"
	EventContestRemoved EventKind = "contest_removed"
	EventVoted          EventKind = "voted"
)

// Event is one entry of the append-only log recorded for every successful
// mutation. Seq is dense and starts at 1; ID is a correlation handle for
// external consumers. Account carries the director for poll events, the
// registrant for contest events and the voter for vote events.
type Event struct {
	Seq          uint64    `json:"seq"`
	ID           uuid.UUID `json:"id"`
	Kind         EventKind `json:"kind"`
	PollID       int64     `json:"poll_id"`
	ContestantID int64     `json:"contestant_id,omitempty"`
	Account      string    `json:"account"`
	Image        string    `json:"image,omitempty"`
	Name         string    `json:"name,omitempty"`
	EmittedAt    int64     `json:"emitted_at"`
}
