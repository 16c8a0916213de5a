package ports

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

type VoteInput struct {
	Caller       string
	PollID       int64
	ContestantID int64
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) (*domain.Event, error)
	HasAddressVoted(ctx context.Context, pollID int64, address string) (bool, error)
}

type EventService interface {
	Events(ctx context.Context, sinceSeq uint64) ([]*domain.Event, error)
}
