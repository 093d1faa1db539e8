package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every method fails with the driver's error, wrapped, when the backing
// store is unreachable or rejects the operation.
type TaskStore interface {
	// Insert saves a new task. The store assigns ID and CreatedAt and
	// returns the record as stored.
	Insert(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// FindAll returns every task in the store's native order.
	// Returns an empty slice when there are none.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// UpdateByID applies the present fields of patch and returns the task
	// as it is after the update.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateByID(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteByID removes a task and returns it as it was just before removal.
	// Returns ErrTaskNotFound if the task does not exist.
	DeleteByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Search returns the tasks matching query, most relevant first.
	Search(ctx context.Context, query string) ([]*domain.Task, error)
}
