// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the in-memory repositories for tasks and polls.

# Ownership

Stores are plain values created in main and injected into handlers:

	tasks := store.NewTaskStore(store.DefaultTasks()...)
	polls := store.NewPollStore()

There is no package-level state, so tests get isolation by constructing a
fresh store.

# Concurrency

Each store guards all of its collections with a single sync.RWMutex. Id
allocation and insertion, find-and-increment for votes, and find-and-replace
for updates each run inside one write-locked section. Reads return copies.

# Ids

Ids come from counters owned by the store and never go backwards:

  - Task ids: one counter per TaskStore
  - Poll ids: one counter per PollStore
  - Option ids: one counter per poll, so ids are scoped to their poll

A deleted id is never handed out again.

# Cascade

DeletePoll removes the poll and every option whose pollId matches.
*/
package store
