// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
	"github.com/danielhkuo/taskpoll/testutil"
)

func TestListTasks(t *testing.T) {
	handler := NewTaskHandler(testutil.NewTestTaskStore())

	req := testutil.MakeRequest("GET", "/tasks", nil, nil)
	w := httptest.NewRecorder()

	handler.ListTasks(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var tasks []models.Task
	testutil.AssertJSON(t, w, &tasks)

	if len(tasks) != 3 {
		t.Fatalf("Expected 3 seeded tasks, got %d", len(tasks))
	}
	if tasks[0].Content != "Learn Go" || !tasks[0].IsDone {
		t.Errorf("Unexpected first task: %+v", tasks[0])
	}
	for i, task := range tasks {
		if task.ID != i+1 {
			t.Errorf("Expected task %d to have id %d, got %d", i, i+1, task.ID)
		}
	}
}

func TestListTasksEmpty(t *testing.T) {
	handler := NewTaskHandler(store.NewTaskStore())

	req := testutil.MakeRequest("GET", "/tasks", nil, nil)
	w := httptest.NewRecorder()

	handler.ListTasks(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertBody(t, w, "[]\n")
}

func TestGetTask(t *testing.T) {
	handler := NewTaskHandler(testutil.NewTestTaskStore())

	tests := []struct {
		name           string
		id             string
		expectedStatus int
		expectedBody   string
		expectedTask   *models.Task
	}{
		{
			name:           "existing task",
			id:             "2",
			expectedStatus: http.StatusOK,
			expectedTask:   &models.Task{ID: 2, Content: "Build a REST API"},
		},
		{
			name:           "missing task",
			id:             "99",
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task with id 99 not found",
		},
		{
			name:           "non-numeric id",
			id:             "abc",
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task with id abc not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/tasks/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetTask(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedTask != nil {
				var task models.Task
				testutil.AssertJSON(t, w, &task)
				if task != *tt.expectedTask {
					t.Errorf("Expected %+v, got %+v", *tt.expectedTask, task)
				}
			}
			if tt.expectedBody != "" {
				testutil.AssertBody(t, w, tt.expectedBody)
			}
		})
	}
}

func TestCreateTask(t *testing.T) {
	tasks := testutil.NewTestTaskStore()
	handler := NewTaskHandler(tasks)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, task models.Task)
	}{
		{
			name:           "valid task",
			requestBody:    models.TaskRequest{Content: "Ship it", IsDone: false},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, task models.Task) {
				if task.ID != 4 {
					t.Errorf("Expected id 4, got %d", task.ID)
				}
				if task.Content != "Ship it" || task.IsDone {
					t.Errorf("Unexpected task: %+v", task)
				}
			},
		},
		{
			name:           "missing fields default to zero values",
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, task models.Task) {
				if task.ID != 5 {
					t.Errorf("Expected id 5, got %d", task.ID)
				}
				if task.Content != "" || task.IsDone {
					t.Errorf("Expected zero-valued task, got %+v", task)
				}
			},
		},
		{
			name:           "invalid JSON",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/tasks", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateTask(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.checkResponse != nil {
				var task models.Task
				testutil.AssertJSON(t, w, &task)
				tt.checkResponse(t, task)
			}
		})
	}

	if tasks.Len() != 5 {
		t.Errorf("Expected 5 tasks after creates, got %d", tasks.Len())
	}
}

func TestCreateTaskInvalidJSONBody(t *testing.T) {
	handler := NewTaskHandler(testutil.NewTestTaskStore())

	req := testutil.MakeRequest("POST", "/tasks", "{", nil)
	w := httptest.NewRecorder()

	handler.CreateTask(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Bad Request" || resp.Message != "Invalid JSON" {
		t.Errorf("Unexpected error response: %+v", resp)
	}
}

func TestUpdateTask(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		requestBody    interface{}
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "replace existing task",
			id:             "1",
			requestBody:    models.TaskRequest{Content: "Learn Go deeply", IsDone: false},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing task",
			id:             "42",
			requestBody:    models.TaskRequest{Content: "x"},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task with id 42 not found",
		},
		{
			name:           "non-numeric id",
			id:             "x",
			requestBody:    models.TaskRequest{Content: "x"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid id",
		},
		{
			name:           "invalid JSON",
			id:             "1",
			requestBody:    "nope",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := testutil.NewTestTaskStore()
			handler := NewTaskHandler(tasks)

			req := testutil.MakeRequest("PUT", "/tasks/"+tt.id, tt.requestBody, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.UpdateTask(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedBody != "" {
				testutil.AssertBody(t, w, tt.expectedBody)
			}

			if tt.expectedStatus == http.StatusOK {
				var task models.Task
				testutil.AssertJSON(t, w, &task)
				want := models.Task{ID: 1, Content: "Learn Go deeply", IsDone: false}
				if task != want {
					t.Errorf("Expected %+v, got %+v", want, task)
				}
				if stored, _ := tasks.Get(1); stored != want {
					t.Errorf("Store not updated: %+v", stored)
				}
			}
		})
	}
}

func TestDeleteTask(t *testing.T) {
	tasks := testutil.NewTestTaskStore()
	handler := NewTaskHandler(tasks)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"existing task", "3", http.StatusNoContent},
		{"already deleted", "3", http.StatusNotFound},
		{"non-numeric id", "three", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/tasks/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.DeleteTask(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusNoContent && w.Body.Len() != 0 {
				t.Errorf("Expected empty body, got %q", w.Body.String())
			}
		})
	}

	if tasks.Len() != 2 {
		t.Errorf("Expected 2 tasks remaining, got %d", tasks.Len())
	}

	// Ids are not reused after a delete.
	created := tasks.Create(models.TaskRequest{Content: "after delete"})
	if created.ID != 4 {
		t.Errorf("Expected new id 4, got %d", created.ID)
	}
}
