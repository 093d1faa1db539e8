package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task operations to the delivery layer.
// Ids are accepted as strings exactly as they arrive on the wire; an id that
// is not a valid UUID yields domain.ErrInvalidID.
type TaskService interface {
	// CreateTask persists a new task built from input.
	CreateTask(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error)

	// ListTasks returns every stored task.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a task by id.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// UpdateTask applies patch to the task and returns the updated state.
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes the task and returns its state before removal.
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)

	// SearchTasks runs a relevance-ranked full-text search.
	SearchTasks(ctx context.Context, query string) ([]*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := input.Build()
	if err != nil {
		log.Debug("task input rejected", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.tasks.Insert(ctx, task)
	if err != nil {
		return nil, s.wrap(log, "create", "failed to create task", err)
	}

	log.Debug("task created", slog.String("task_id", created.ID.String()))
	return created, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(log, "list", "failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := ParseTaskID(id)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, s.wrap(log, "get", "failed to retrieve task", err)
	}
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := ParseTaskID(id)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateByID(ctx, taskID, patch)
	if err != nil {
		return nil, s.wrap(log, "update", "failed to update task", err)
	}

	log.Debug("task updated", slog.String("task_id", task.ID.String()))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := ParseTaskID(id)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.DeleteByID(ctx, taskID)
	if err != nil {
		return nil, s.wrap(log, "delete", "failed to delete task", err)
	}

	log.Debug("task deleted", slog.String("task_id", task.ID.String()))
	return task, nil
}

// SearchTasks implements TaskService.SearchTasks.
// The query is passed to the store verbatim; rejecting blank queries is the
// caller's job.
func (s *taskServiceImpl) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.Search(ctx, query)
	if err != nil {
		return nil, s.wrap(log, "search", "failed to search tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("tasks searched", slog.Int("count", len(tasks)))
	return tasks, nil
}

// ParseTaskID parses a task id in canonical UUID form.
func ParseTaskID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a valid UUID", domain.ErrInvalidID)
	}
	return parsed, nil
}

// wrap translates store errors into service errors.
// Not-found becomes ErrTaskNotFound and validation errors pass through;
// anything else is logged and wrapped as a storage failure.
func (s *taskServiceImpl) wrap(log *slog.Logger, op, message string, err error) error {
	switch {
	case store.IsNotFoundError(err):
		return ErrTaskNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID):
		return err
	case errors.Is(err, store.ErrInvalidEntity):
		return domain.NewValidationError("", "task violates storage constraints", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	log.Error(message,
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return NewTaskServiceError(op, message, err)
}
