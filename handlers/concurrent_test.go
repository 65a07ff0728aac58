// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/taskpoll/cliparse"
	"github.com/danielhkuo/taskpoll/live"
	"github.com/danielhkuo/taskpoll/models"
	"github.com/danielhkuo/taskpoll/store"
	"github.com/danielhkuo/taskpoll/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes on the same option
// are all counted
func TestConcurrentVotes(t *testing.T) {
	polls := store.NewPollStore()
	handler := NewVotingHandler(polls, live.New())

	poll := testutil.CreateTestPoll(t, polls, "Best pet?")
	cat := testutil.AddTestOption(t, polls, poll.ID, "Cat")
	dog := testutil.AddTestOption(t, polls, poll.ID, "Dog")

	numVoters := 50
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			optionID := cat.ID
			if voterIdx%5 == 0 {
				optionID = dog.ID
			}
			id := strconv.Itoa(optionID)

			req := testutil.MakeRequest("POST", "/polls/1/options/"+id+"/vote", nil, nil)
			req.SetPathValue("pollId", strconv.Itoa(poll.ID))
			req.SetPathValue("id", id)
			w := httptest.NewRecorder()

			handler.VoteInPoll(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	res, _ := polls.Results(poll.ID)
	if res.Options[0].VoteCount != 40 {
		t.Errorf("Expected Cat to have 40 votes, got %d", res.Options[0].VoteCount)
	}
	if res.Options[1].VoteCount != 10 {
		t.Errorf("Expected Dog to have 10 votes, got %d", res.Options[1].VoteCount)
	}
}

// TestConcurrentTaskCreates verifies that parallel creates never hand out the
// same id twice
func TestConcurrentTaskCreates(t *testing.T) {
	tasks := store.NewTaskStore()
	handler := NewTaskHandler(tasks)

	numRequests := 40
	ids := make(chan int, numRequests)
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/tasks",
				models.TaskRequest{Content: "task " + strconv.Itoa(i)}, nil)
			w := httptest.NewRecorder()

			handler.CreateTask(w, req)

			if w.Code != http.StatusCreated {
				t.Errorf("Expected status 201, got %d", w.Code)
				return
			}
			var task models.Task
			if err := json.NewDecoder(w.Body).Decode(&task); err != nil {
				t.Errorf("Failed to decode response: %v", err)
				return
			}
			ids <- task.ID
		}(i)
	}

	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate task id %d", id)
		}
		seen[id] = true
	}
	for id := 1; id <= numRequests; id++ {
		if !seen[id] {
			t.Errorf("Missing task id %d", id)
		}
	}
}

// TestConcurrentOptionsAcrossPolls adds options to several polls at once and
// checks each poll numbers its options 1..n
func TestConcurrentOptionsAcrossPolls(t *testing.T) {
	polls := store.NewPollStore()
	handler := NewPollHandler(polls, live.New(), cliparse.Defaults())

	numPolls := 4
	perPoll := 10
	for i := 0; i < numPolls; i++ {
		testutil.CreateTestPoll(t, polls, "Poll "+strconv.Itoa(i))
	}

	var wg sync.WaitGroup
	for p := 1; p <= numPolls; p++ {
		for j := 0; j < perPoll; j++ {
			wg.Add(1)
			go func(pollID, j int) {
				defer wg.Done()

				req := testutil.MakeRequest("POST", "/options",
					models.PollOptionRequest{Text: "opt " + strconv.Itoa(j), PollID: pollID}, nil)
				w := httptest.NewRecorder()

				handler.AddOption(w, req)

				if w.Code != http.StatusCreated {
					t.Errorf("Expected status 201, got %d", w.Code)
				}
			}(p, j)
		}
	}

	wg.Wait()

	for p := 1; p <= numPolls; p++ {
		options := polls.OptionsByPoll(p)
		if len(options) != perPoll {
			t.Fatalf("Poll %d: expected %d options, got %d", p, perPoll, len(options))
		}
		seen := make(map[int]bool)
		for _, o := range options {
			seen[o.ID] = true
		}
		for id := 1; id <= perPoll; id++ {
			if !seen[id] {
				t.Errorf("Poll %d: missing option id %d", p, id)
			}
		}
	}
}
