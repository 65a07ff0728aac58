// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/taskpoll/middleware"
	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
)

type TaskHandler struct {
	tasks *store.TaskStore
}

func NewTaskHandler(tasks *store.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.tasks.All())
}

// GetTask handles GET /tasks/{id}
// An id that isn't an integer is reported as not found.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, ok := pathID(r, "id")
	if ok {
		if task, found := h.tasks.Get(id); found {
			middleware.JSONResponse(w, http.StatusOK, task)
			return
		}
	}
	middleware.TextResponse(w, http.StatusNotFound, taskNotFound(raw))
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.TaskRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	task := h.tasks.Create(req)
	slog.Info("task created", "task_id", task.ID)

	middleware.JSONResponse(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, ok := pathID(r, "id")
	if !ok {
		middleware.TextResponse(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req models.TaskRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	task, found := h.tasks.Update(id, req)
	if !found {
		middleware.TextResponse(w, http.StatusNotFound, taskNotFound(raw))
		return
	}

	slog.Info("task updated", "task_id", id)
	middleware.JSONResponse(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, ok := pathID(r, "id")
	if !ok || !h.tasks.Delete(id) {
		middleware.TextResponse(w, http.StatusNotFound, taskNotFound(raw))
		return
	}

	slog.Info("task deleted", "task_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func taskNotFound(raw string) string {
	return fmt.Sprintf("Task with id %s not found", raw)
}

// pathID parses the named path segment as an integer id.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, false
	}
	return id, true
}
