package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

type VoteHandler struct {
	voteService  ports.VoteService
	eventService ports.EventService
}

func NewVoteHandler(voteService ports.VoteService, eventService ports.EventService) *VoteHandler {
	return &VoteHandler{
		voteService:  voteService,
		eventService: eventService,
	}
}

type voteRequest struct {
	ContestantID int64 `json:"contestant_id"`
}

func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(r)
	if !ok {
		http.Error(w, "missing caller identity", http.StatusUnauthorized)
		return
	}

	pollID, err := pollIDParam(r)
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ev, err := h.voteService.Vote(r.Context(), ports.VoteInput{
		Caller:       caller,
		PollID:       pollID,
		ContestantID: req.ContestantID,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ev)
}

// HasVoted answers the double-vote probe for any address, no auth needed.
func (h *VoteHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		http.Error(w, "missing address", http.StatusBadRequest)
		return
	}

	voted, err := h.voteService.HasAddressVoted(r.Context(), pollID, address)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"voted": voted})
}

// Events serves the append-only log tail; UI layers poll it with their last
// seen sequence number instead of re-fetching every view.
func (h *VoteHandler) Events(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	events, err := h.eventService.Events(r.Context(), since)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}
