// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/taskpoll/cliparse"
	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Defaults()
	cfg.Port = 3318
	return cfg
}

// NewTestTaskStore returns a task store holding the default seed tasks
func NewTestTaskStore() *store.TaskStore {
	return store.NewTaskStore(store.DefaultTasks()...)
}

// CreateTestPoll adds a poll to the store and returns it
func CreateTestPoll(t *testing.T, polls *store.PollStore, question string) models.Poll {
	t.Helper()
	return polls.CreatePoll(models.PollRequest{Question: question})
}

// AddTestOption adds an option to an existing poll and returns it
func AddTestOption(t *testing.T, polls *store.PollStore, pollID int, text string) models.PollOption {
	t.Helper()

	option, err := polls.CreateOption(models.PollOptionRequest{Text: text, PollID: pollID}, true)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}
	return option
}

// MakeRequest creates an HTTP test request. A string body is sent as-is so
// malformed JSON can be tested.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertBody checks the response body text exactly
func AssertBody(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	if got := w.Body.String(); got != expected {
		t.Errorf("Expected body %q, got %q", expected, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
