package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

type ContestHandler struct {
	service ports.ContestService
}

func NewContestHandler(service ports.ContestService) *ContestHandler {
	return &ContestHandler{
		service: service,
	}
}

type contestRequest struct {
	Image string `json:"image"`
	Name  string `json:"name"`
}

func (h *ContestHandler) Contest(w http.ResponseWriter, r *http.Request) {
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

	var req contestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	contestant, _, err := h.service.Contest(r.Context(), ports.ContestInput{
		Caller: caller,
		PollID: pollID,
		Image:  req.Image,
		Name:   req.Name,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, contestant)
}

func (h *ContestHandler) UpdateContestant(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(r)
	if !ok {
		http.Error(w, "missing caller identity", http.StatusUnauthorized)
		return
	}

	pollID, contestantID, err := contestantParams(r)
	if err != nil {
		http.Error(w, "invalid poll or contestant id", http.StatusBadRequest)
		return
	}

	var req contestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	contestant, _, err := h.service.UpdateContestant(r.Context(), ports.UpdateContestantInput{
		Caller:       caller,
		PollID:       pollID,
		ContestantID: contestantID,
		Image:        req.Image,
		Name:         req.Name,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contestant)
}

func (h *ContestHandler) DeleteContestant(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(r)
	if !ok {
		http.Error(w, "missing caller identity", http.StatusUnauthorized)
		return
	}

	pollID, contestantID, err := contestantParams(r)
	if err != nil {
		http.Error(w, "invalid poll or contestant id", http.StatusBadRequest)
		return
	}

	if _, err := h.service.DeleteContestant(r.Context(), caller, pollID, contestantID); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ContestHandler) GetContestants(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	contestants, err := h.service.GetContestants(r.Context(), pollID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contestants)
}

func (h *ContestHandler) GetContestant(w http.ResponseWriter, r *http.Request) {
	pollID, contestantID, err := contestantParams(r)
	if err != nil {
		http.Error(w, "invalid poll or contestant id", http.StatusBadRequest)
		return
	}

	contestant, err := h.service.GetContestant(r.Context(), pollID, contestantID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contestant)
}

func contestantParams(r *http.Request) (int64, int64, error) {
	pollID, err := pollIDParam(r)
	if err != nil {
		return 0, 0, err
	}
	contestantID, err := strconv.ParseInt(chi.URLParam(r, "cid"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return pollID, contestantID, nil
}
