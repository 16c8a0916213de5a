package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeLedgerError maps the ledger's sentinel errors onto HTTP statuses so
// clients get the precise rejection kind.
func writeLedgerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidPoll):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotDirector):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidTime):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrPollDeleted):
		status = http.StatusGone
	case errors.Is(err, domain.ErrVotingNotStarted),
		errors.Is(err, domain.ErrVotingClosed),
		errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrContestantHasVotes):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}
