// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs

WithRequestID tags every request with an id, reusing X-Request-ID when the
caller sends one and generating a UUID otherwise:

	handler := middleware.WithRequestID(mux)
	id := middleware.RequestID(r.Context())

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /tasks", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms).

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
	}

An empty origin echoes the request Origin header.

# Response Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
	middleware.TextResponse(w, http.StatusNotFound, "Poll not found")

Not-found responses are plain text; malformed request bodies get a JSON
ErrorResponse.

# Status Capture

StatusWriter records the status code a handler wrote. It supports Hijack so
websocket upgrades pass through the logging and metrics wrappers.
*/
package middleware
