// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/taskpoll/live"
	"github.com/danielhkuo/taskpoll/middleware"
	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
)

type ResultsHandler struct {
	polls *store.PollStore
	hub   *live.Hub
}

func NewResultsHandler(polls *store.PollStore, hub *live.Hub) *ResultsHandler {
	return &ResultsHandler{polls: polls, hub: hub}
}

// GetResults handles GET /polls/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.TextResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	res, found := h.polls.Results(id)
	if !found {
		middleware.TextResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// StreamResults handles GET /polls/{id}/live
// Upgrades to a websocket that receives results after every change.
func (h *ResultsHandler) StreamResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.TextResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	if _, found := h.polls.Poll(id); !found {
		middleware.TextResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	h.hub.Serve(w, r, id, func() (models.PollResult, uint64, bool) {
		return h.polls.Snapshot(id)
	})
}
