// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/taskpoll/live"
	"github.com/danielhkuo/taskpoll/middleware"
	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
)

type VotingHandler struct {
	polls *store.PollStore
	hub   *live.Hub
}

func NewVotingHandler(polls *store.PollStore, hub *live.Hub) *VotingHandler {
	return &VotingHandler{polls: polls, hub: hub}
}

// Vote handles POST /options/{id}/vote
// Option ids repeat across polls; the earliest option with the id gets the vote.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.TextResponse(w, http.StatusNotFound, "Option not found")
		return
	}

	option, found := h.polls.Vote(id)
	h.respond(w, option, found)
}

// VoteInPoll handles POST /polls/{pollId}/options/{id}/vote
func (h *VotingHandler) VoteInPoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pathID(r, "pollId")
	if !ok {
		middleware.TextResponse(w, http.StatusNotFound, "Option not found")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		middleware.TextResponse(w, http.StatusNotFound, "Option not found")
		return
	}

	option, found := h.polls.VoteInPoll(pollID, id)
	h.respond(w, option, found)
}

func (h *VotingHandler) respond(w http.ResponseWriter, option models.PollOption, found bool) {
	if !found {
		middleware.TextResponse(w, http.StatusNotFound, "Option not found")
		return
	}

	slog.Info("vote recorded",
		"poll_id", option.PollID,
		"option_id", option.ID,
		"vote_count", option.VoteCount,
	)
	publishResults(h.polls, h.hub, option.PollID)

	middleware.TextResponse(w, http.StatusOK, "Vote recorded")
}
