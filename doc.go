// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the taskpoll API server.

taskpoll serves a to-do list and simple single-choice polls over JSON,
with live poll results pushed to websocket subscribers.

# Starting the Server

Every setting has a default, so the server starts with no configuration:

	go run .

Or with flags:

	go run . -p 9000 -log-level debug -config taskpoll.yaml

# Configuration

Settings are merged in increasing precedence: defaults, the yaml file
named by -config (CONFIG_FILE), environment variables (after loading
-env-file, default .env), then CLI flags.

  - PORT (-p): Server port (default: 8080)
  - LOG_LEVEL (-log-level): debug, info, warn or error
  - LOG_FORMAT (-log-format): text or json
  - SEED_TASKS (-seed): Start with the example tasks (default: true)
  - STRICT_OPTIONS (-strict-options): Reject options for unknown polls (default: true)
  - CORS_ORIGIN (-cors-origin): Allowed origin, empty echoes the request

When a config file is used, edits to its log_level apply without a restart.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (tasks, polls, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request ids, JSON helpers
  - models: Request/response types
  - store: Mutex-guarded in-memory repositories
  - live: Websocket fan-out of poll results
  - metrics: Prometheus exposition
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
