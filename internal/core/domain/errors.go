package domain

import "errors"

var (
	ErrInvalidTime        = errors.New("poll start time must be before end time")
	ErrNotDirector        = errors.New("caller is not the poll director")
	ErrPollDeleted        = errors.New("poll has been deleted")
	ErrVotingNotStarted   = errors.New("voting has not started yet")
	ErrVotingClosed       = errors.New("voting has closed")
	ErrAlreadyVoted       = errors.New("address has already voted in this poll")
	ErrInvalidPoll        = errors.New("poll or contestant does not exist")
	ErrContestantHasVotes = errors.New("contestant with votes cannot be removed")
)
