package model

import "time"

// Task is a single entry in the personal task list. The JSON field names
// match the persisted layout under the "todos" key.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
