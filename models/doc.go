// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - TaskRequest: content, isDone
  - PollRequest: question
  - PollOptionRequest: text, pollId

# Domain Types

  - Task: id, content, isDone
  - Poll: id, question
  - PollOption: id, text, voteCount, pollId
  - PollResult: a poll joined with its options (derived, never stored)

Field names are camelCase on the wire to match existing API clients:

	{"id":1,"text":"Cat","voteCount":0,"pollId":1}

# Response Types

  - HealthResponse: status and entity counts
  - ErrorResponse: error, message

# Identity

Task and Poll ids are unique within their collection. PollOption ids are
scoped to their poll, so two options of different polls may share an id.
*/
package models
