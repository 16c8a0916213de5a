package ports

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

type CreatePollInput struct {
	Director    string
	Image       string
	Title       string
	Description string
	StartsAt    int64
	EndsAt      int64
}

type UpdatePollInput struct {
	Caller      string
	PollID      int64
	Image       string
	Title       string
	Description string
	StartsAt    int64
	EndsAt      int64
}

type PollService interface {
	CreatePoll(ctx context.Context, input CreatePollInput) (*domain.Poll, *domain.Event, error)
	UpdatePoll(ctx context.Context, input UpdatePollInput) (*domain.Poll, *domain.Event, error)
	DeletePoll(ctx context.Context, caller string, pollID int64) (*domain.Event, error)
	GetPoll(ctx context.Context, pollID int64) (*domain.Poll, error)
	GetPolls(ctx context.Context) ([]*domain.Poll, error)
	GetPollStats(ctx context.Context, pollID int64) (*domain.PollStats, error)
	NowTime(ctx context.Context) int64
}
