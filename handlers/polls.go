// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/taskpoll/cliparse"
	"github.com/danielhkuo/taskpoll/live"
	"github.com/danielhkuo/taskpoll/middleware"
	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
)

type PollHandler struct {
	polls *store.PollStore
	hub   *live.Hub
	cfg   cliparse.Config
}

func NewPollHandler(polls *store.PollStore, hub *live.Hub, cfg cliparse.Config) *PollHandler {
	return &PollHandler{polls: polls, hub: hub, cfg: cfg}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.polls.AllPolls())
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.PollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll := h.polls.CreatePoll(req)
	slog.Info("poll created", "poll_id", poll.ID)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// DeletePoll handles DELETE /polls/{id}
// Options of the poll are removed with it and live subscribers are dropped.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok || !h.polls.DeletePoll(id) {
		middleware.TextResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	h.hub.Close(id)
	slog.Info("poll deleted", "poll_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// AddOption handles POST /options
func (h *PollHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	var req models.PollOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	option, err := h.polls.CreateOption(req, h.cfg.StrictOptions)
	if errors.Is(err, store.ErrPollNotFound) {
		middleware.TextResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to add option", "poll_id", req.PollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create option")
		return
	}

	slog.Info("option added", "poll_id", option.PollID, "option_id", option.ID)
	publishResults(h.polls, h.hub, option.PollID)

	middleware.JSONResponse(w, http.StatusCreated, option)
}

// publishResults sends the poll's current results to live subscribers.
// The revision lets the hub drop a snapshot that a concurrent change has
// already superseded.
func publishResults(polls *store.PollStore, hub *live.Hub, pollID int) {
	if res, rev, ok := polls.Snapshot(pollID); ok {
		hub.Publish(pollID, rev, res)
	}
}
