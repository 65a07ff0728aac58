// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sync"

	"github.com/danielhkuo/taskpoll/models"
)

// TaskStore is a thread-safe ordered collection of tasks.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []models.Task
	nextID int
}

// DefaultTasks returns the example tasks a fresh server starts with.
func DefaultTasks() []models.Task {
	return []models.Task{
		{ID: 1, Content: "Learn Go", IsDone: true},
		{ID: 2, Content: "Build a REST API", IsDone: false},
		{ID: 3, Content: "Write tests", IsDone: false},
	}
}

// NewTaskStore creates a store holding seed in the given order.
func NewTaskStore(seed ...models.Task) *TaskStore {
	s := &TaskStore{nextID: 1}
	for _, t := range seed {
		s.add(t)
	}
	return s
}

// All returns every task in insertion order.
func (s *TaskStore) All() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the first task with the given id.
func (s *TaskStore) Get(id int) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// Add appends a task whose id was chosen by the caller.
// The id counter moves past t.ID so later creates don't collide with it.
func (s *TaskStore) Add(t models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(t)
}

// Create assigns the next id and appends the task.
func (s *TaskStore) Create(req models.TaskRequest) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Task{ID: s.nextID, Content: req.Content, IsDone: req.IsDone}
	s.add(t)
	return t
}

// Update replaces content and isDone of the task with the given id.
func (s *TaskStore) Update(id int, req models.TaskRequest) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	s.tasks[i] = models.Task{ID: id, Content: req.Content, IsDone: req.IsDone}
	return s.tasks[i], true
}

// Delete removes every task with the given id and reports whether any existed.
func (s *TaskStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(s.tasks)
	s.tasks = kept
	return removed
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// add requires s.mu held for writing.
func (s *TaskStore) add(t models.Task) {
	s.tasks = append(s.tasks, t)
	if t.ID >= s.nextID {
		s.nextID = t.ID + 1
	}
}

func (s *TaskStore) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
