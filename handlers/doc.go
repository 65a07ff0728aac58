// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the taskpoll API.

# Handler Types

Each handler is a struct holding the stores it operates on:

  - TaskHandler: Task CRUD
  - PollHandler: Poll creation, deletion and options
  - VotingHandler: Vote counting
  - ResultsHandler: Poll results, one-shot and streamed

Handlers are created via constructor functions:

	taskHandler := handlers.NewTaskHandler(tasks)
	pollHandler := handlers.NewPollHandler(polls, hub, cfg)

# Responses

Successful reads and creates return JSON. Missing entities return a
plain-text 404 body ("Poll not found", "Option not found",
"Task with id 7 not found"). A body that is not valid JSON returns 400
with an ErrorResponse.

# Live Results

Every change to a poll's options or votes is published to the live.Hub,
and deleting a poll disconnects its subscribers:

	GET /polls/{id}/live → StreamResults (websocket)
*/
package handlers
