// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/taskpoll/cliparse"
	"github.com/danielhkuo/taskpoll/handlers"
	"github.com/danielhkuo/taskpoll/live"
	"github.com/danielhkuo/taskpoll/metrics"
	"github.com/danielhkuo/taskpoll/middleware"
	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
)

// Deps are the long-lived objects the routes operate on.
type Deps struct {
	Tasks   *store.TaskStore
	Polls   *store.PollStore
	Hub     *live.Hub
	Metrics *metrics.Registry
}

func NewRouter(deps Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	reg := deps.Metrics

	// Every API route is logged and counted under its pattern.
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(reg.Instrument(pattern, h)))
	}

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(deps.Tasks)
	pollHandler := handlers.NewPollHandler(deps.Polls, deps.Hub, cfg)
	votingHandler := handlers.NewVotingHandler(deps.Polls, deps.Hub)
	resultsHandler := handlers.NewResultsHandler(deps.Polls, deps.Hub)

	reg.Gauge("taskpoll_tasks", "Tasks currently stored.", func() float64 {
		return float64(deps.Tasks.Len())
	})
	reg.Gauge("taskpoll_polls", "Polls currently stored.", func() float64 {
		polls, _ := deps.Polls.Len()
		return float64(polls)
	})
	reg.Gauge("taskpoll_poll_options", "Poll options currently stored.", func() float64 {
		_, options := deps.Polls.Len()
		return float64(options)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		polls, options := deps.Polls.Len()
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:  "ok",
			Tasks:   deps.Tasks.Len(),
			Polls:   polls,
			Options: options,
		})
	})
	mux.Handle("GET /metrics", reg)

	// Tasks
	handle("GET /tasks", taskHandler.ListTasks)
	handle("GET /tasks/{id}", taskHandler.GetTask)
	handle("POST /tasks", taskHandler.CreateTask)
	handle("PUT /tasks/{id}", taskHandler.UpdateTask)
	handle("DELETE /tasks/{id}", taskHandler.DeleteTask)

	// Polls and options
	handle("GET /polls", pollHandler.ListPolls)
	handle("POST /polls", pollHandler.CreatePoll)
	handle("DELETE /polls/{id}", pollHandler.DeletePoll)
	handle("POST /options", pollHandler.AddOption)

	// Voting
	handle("POST /options/{id}/vote", votingHandler.Vote)
	handle("POST /polls/{pollId}/options/{id}/vote", votingHandler.VoteInPoll)

	// Results
	handle("GET /polls/{id}/results", resultsHandler.GetResults)
	handle("GET /polls/{id}/live", resultsHandler.StreamResults)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("taskpoll API v1"))
	})

	return mux
}
