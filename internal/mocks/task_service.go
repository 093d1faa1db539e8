package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// Ensure MockTaskService implements service.TaskService
var _ service.TaskService = (*MockTaskService)(nil)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	CreateTaskFn  func(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error)
	ListTasksFn   func(ctx context.Context) ([]*domain.Task, error)
	GetTaskFn     func(ctx context.Context, id string) (*domain.Task, error)
	UpdateTaskFn  func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn  func(ctx context.Context, id string) (*domain.Task, error)
	SearchTasksFn func(ctx context.Context, query string) ([]*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error

	// Calls records the method names invoked, in order
	Calls []string
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error) {
	m.Calls = append(m.Calls, "CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return m.Task, m.DefaultError
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	m.Calls = append(m.Calls, "ListTasks")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	m.Calls = append(m.Calls, "GetTask")
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	m.Calls = append(m.Calls, "UpdateTask")
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	m.Calls = append(m.Calls, "DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// SearchTasks implements the TaskService.SearchTasks method
func (m *MockTaskService) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	m.Calls = append(m.Calls, "SearchTasks")
	if m.SearchTasksFn != nil {
		return m.SearchTasksFn(ctx, query)
	}
	return m.Tasks, m.DefaultError
}

// Called reports whether method was invoked at least once.
func (m *MockTaskService) Called(method string) bool {
	for _, c := range m.Calls {
		if c == method {
			return true
		}
	}
	return false
}
