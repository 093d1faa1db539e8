package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item.
//
// ID and CreatedAt are assigned by the store when the task is inserted and
// never change afterwards.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTaskInput carries the fields accepted when creating a task.
// Nil pointers take the entity defaults.
type NewTaskInput struct {
	Title       string
	Description *string
	Completed   *bool
}

// Build returns the task described by the input with defaults applied.
// ID and CreatedAt are left zero for the store to fill in.
func (in NewTaskInput) Build() (*Task, error) {
	task := &Task{Title: in.Title}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the invariants that hold for every stored task.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	return nil
}

// TaskPatch is a partial update. Only non-nil fields are applied.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Validate rejects a patch that would leave the task without a title.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "cannot be blank", ErrEmptyTitle)
	}
	return nil
}

// ApplyTo copies the present fields onto t. ID and CreatedAt are untouched.
func (p TaskPatch) ApplyTo(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
