package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler assembles the API surface. Reads are public; writes go
// through the auth middleware that resolves the caller address.
func NewHandler(pollHandler *PollHandler, contestHandler *ContestHandler, voteHandler *VoteHandler, auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/now", pollHandler.Now)
		r.Get("/events", voteHandler.Events)

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Get("/{id}", pollHandler.GetPoll)
			r.Get("/{id}/stats", pollHandler.GetPollStats)
			r.Get("/{id}/contestants", contestHandler.GetContestants)
			r.Get("/{id}/contestants/{cid}", contestHandler.GetContestant)
			r.Get("/{id}/voted", voteHandler.HasVoted)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", pollHandler.CreatePoll)
				r.Put("/{id}", pollHandler.UpdatePoll)
				r.Delete("/{id}", pollHandler.DeletePoll)
				r.Post("/{id}/contestants", contestHandler.Contest)
				r.Put("/{id}/contestants/{cid}", contestHandler.UpdateContestant)
				r.Delete("/{id}/contestants/{cid}", contestHandler.DeleteContestant)
				r.Post("/{id}/votes", voteHandler.Vote)
			})
		})
	})

	return r
}
