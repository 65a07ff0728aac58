package models

// Request types

type TaskRequest struct {
	Content string `json:"content"`
	IsDone  bool   `json:"isDone"`
}

type PollRequest struct {
	Question string `json:"question"`
}

type PollOptionRequest struct {
	Text   string `json:"text"`
	PollID int    `json:"pollId"`
}

// Domain types

type Task struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	IsDone  bool   `json:"isDone"`
}

type Poll struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

// PollOption ids are unique only among options of the same poll.
type PollOption struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	VoteCount int    `json:"voteCount"`
	PollID    int    `json:"pollId"`
}

// PollResult is computed on read by joining a poll with its options.
type PollResult struct {
	ID       int          `json:"id"`
	Question string       `json:"question"`
	Options  []PollOption `json:"options"`
}

// Response types

type HealthResponse struct {
	Status  string `json:"status"`
	Tasks   int    `json:"tasks"`
	Polls   int    `json:"polls"`
	Options int    `json:"options"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
