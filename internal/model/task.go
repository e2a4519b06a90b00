package model

import (
	"fmt"
	"strings"
)

// Task represents a single entry of the task list.
type Task struct {
	// ID is the identifier generated by the remote endpoint when the task was created.
	ID   string
	Text string
}

// Validate validates the task.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("text is required: %w", ErrNotValid)
	}
	return nil
}
