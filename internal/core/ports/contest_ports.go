package ports

import (
	"context"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

type ContestInput struct {
	Caller string
	PollID int64
	Image  string
	Name   string
}

type UpdateContestantInput struct {
	Caller       string
	PollID       int64
	ContestantID int64
	Image        string
	Name         string
}

type ContestService interface {
	Contest(ctx context.Context, input ContestInput) (*domain.Contestant, *domain.Event, error)
	UpdateContestant(ctx context.Context, input UpdateContestantInput) (*domain.Contestant, *domain.Event, error)
	DeleteContestant(ctx context.Context, caller string, pollID, contestantID int64) (*domain.Event, error)
	GetContestants(ctx context.Context, pollID int64) ([]*domain.Contestant, error)
	GetContestant(ctx context.Context, pollID, contestantID int64) (*domain.Contestant, error)
}
