// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"sync"

	"github.com/danielhkuo/taskpoll/models"
)

// ErrPollNotFound is returned by CreateOption when the poll must exist and
// does not.
var ErrPollNotFound = errors.New("poll not found")

// PollStore is a thread-safe collection of polls and their options.
type PollStore struct {
	mu           sync.RWMutex
	polls        []models.Poll
	options      []models.PollOption
	nextPollID   int
	nextOptionID map[int]int // pollID -> next option id
	revision     uint64      // bumped on every change, never reset
}

func NewPollStore() *PollStore {
	return &PollStore{
		nextPollID:   1,
		nextOptionID: make(map[int]int),
	}
}

// Reset drops all polls and options and restarts id allocation.
func (s *PollStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls = nil
	s.options = nil
	s.nextPollID = 1
	s.nextOptionID = make(map[int]int)
}

// AllPolls returns every poll in insertion order.
func (s *PollStore) AllPolls() []models.Poll {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Poll, len(s.polls))
	copy(out, s.polls)
	return out
}

// Poll returns the poll with the given id.
func (s *PollStore) Poll(id int) (models.Poll, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.pollIndex(id)
	if i < 0 {
		return models.Poll{}, false
	}
	return s.polls[i], true
}

// AddPoll appends a poll whose id was chosen by the caller.
func (s *PollStore) AddPoll(p models.Poll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addPoll(p)
}

// CreatePoll assigns the next poll id and appends the poll.
func (s *PollStore) CreatePoll(req models.PollRequest) models.Poll {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Poll{ID: s.nextPollID, Question: req.Question}
	s.addPoll(p)
	return p
}

// DeletePoll removes the poll and all of its options. It reports whether
// the poll itself existed; options are removed either way.
func (s *PollStore) DeletePoll(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.options[:0]
	for _, o := range s.options {
		if o.PollID != id {
			opts = append(opts, o)
		}
	}
	s.options = opts

	polls := s.polls[:0]
	for _, p := range s.polls {
		if p.ID != id {
			polls = append(polls, p)
		}
	}
	removed := len(polls) != len(s.polls)
	s.polls = polls
	s.revision++
	return removed
}

// AddOption appends an option whose id was chosen by the caller.
func (s *PollStore) AddOption(o models.PollOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addOption(o)
}

// CreateOption assigns the next option id within req.PollID and appends the
// option with a zero vote count. When requirePoll is set and the poll does
// not exist, it returns ErrPollNotFound and stores nothing.
func (s *PollStore) CreateOption(req models.PollOptionRequest, requirePoll bool) (models.PollOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if requirePoll && s.pollIndex(req.PollID) < 0 {
		return models.PollOption{}, ErrPollNotFound
	}

	id, ok := s.nextOptionID[req.PollID]
	if !ok {
		id = 1
	}
	o := models.PollOption{ID: id, Text: req.Text, PollID: req.PollID}
	s.addOption(o)
	return o, nil
}

// OptionsByPoll returns the options of one poll in insertion order.
func (s *PollStore) OptionsByPoll(pollID int) []models.PollOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.optionsByPoll(pollID)
}

// Vote increments the first option with the given id, in insertion order.
// Option ids are per poll, so callers that know the poll should use VoteInPoll.
func (s *PollStore) Vote(optionID int) (models.PollOption, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.options {
		if s.options[i].ID == optionID {
			s.options[i].VoteCount++
			s.revision++
			return s.options[i], true
		}
	}
	return models.PollOption{}, false
}

// VoteInPoll increments the option identified by pollID and optionID.
func (s *PollStore) VoteInPoll(pollID, optionID int) (models.PollOption, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.options {
		if s.options[i].PollID == pollID && s.options[i].ID == optionID {
			s.options[i].VoteCount++
			s.revision++
			return s.options[i], true
		}
	}
	return models.PollOption{}, false
}

// Results joins a poll with its options.
func (s *PollStore) Results(id int) (models.PollResult, bool) {
	res, _, ok := s.Snapshot(id)
	return res, ok
}

// Snapshot returns the results of a poll together with the store revision
// they were read at. A later snapshot of the same poll never has a smaller
// revision.
func (s *PollStore) Snapshot(id int) (models.PollResult, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.pollIndex(id)
	if i < 0 {
		return models.PollResult{}, s.revision, false
	}
	p := s.polls[i]
	return models.PollResult{
		ID:       p.ID,
		Question: p.Question,
		Options:  s.optionsByPoll(id),
	}, s.revision, true
}

// Len returns the number of polls and options currently stored.
func (s *PollStore) Len() (polls, options int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.polls), len(s.options)
}

func (s *PollStore) addPoll(p models.Poll) {
	s.polls = append(s.polls, p)
	s.revision++
	if p.ID >= s.nextPollID {
		s.nextPollID = p.ID + 1
	}
}

func (s *PollStore) addOption(o models.PollOption) {
	s.options = append(s.options, o)
	s.revision++
	if next, ok := s.nextOptionID[o.PollID]; !ok || o.ID >= next {
		s.nextOptionID[o.PollID] = o.ID + 1
	}
}

func (s *PollStore) pollIndex(id int) int {
	for i, p := range s.polls {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *PollStore) optionsByPoll(pollID int) []models.PollOption {
	out := []models.PollOption{}
	for _, o := range s.options {
		if o.PollID == pollID {
			out = append(out, o)
		}
	}
	return out
}
