// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the taskpoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Tasks:   tasks,
		Polls:   polls,
		Hub:     hub,
		Metrics: reg,
	}, cfg)

# Endpoints

Operational:

	GET /health  - Status and entity counts
	GET /metrics - Prometheus exposition
	GET /        - Banner

Tasks:

	GET    /tasks      - List tasks
	GET    /tasks/{id} - Get task
	POST   /tasks      - Create task
	PUT    /tasks/{id} - Replace task
	DELETE /tasks/{id} - Delete task

Polls:

	GET    /polls              - List polls
	POST   /polls              - Create poll
	DELETE /polls/{id}         - Delete poll and its options
	POST   /options            - Add option to a poll
	POST   /options/{id}/vote  - Vote for an option
	POST   /polls/{pollId}/options/{id}/vote - Vote, scoped to one poll
	GET    /polls/{id}/results - Poll with its options
	GET    /polls/{id}/live    - Websocket stream of results

# Handler Initialization

The router creates handler instances with dependency injection:

	taskHandler := handlers.NewTaskHandler(deps.Tasks)
	pollHandler := handlers.NewPollHandler(deps.Polls, deps.Hub, cfg)
	votingHandler := handlers.NewVotingHandler(deps.Polls, deps.Hub)
	resultsHandler := handlers.NewResultsHandler(deps.Polls, deps.Hub)

API routes are wrapped with request logging and per-pattern metrics.
*/
package router
