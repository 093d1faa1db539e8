package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskStore keeps tasks in a map guarded by a RWMutex.
// Insertion order is remembered so FindAll is stable.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
	order []uuid.UUID

	now    func() time.Time
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore returns an empty store. If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[uuid.UUID]domain.Task),
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// Insert implements store.TaskStore.Insert.
func (s *TaskStore) Insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created := *task
	created.ID = uuid.New()
	created.CreatedAt = s.now()

	s.mu.Lock()
	s.tasks[created.ID] = created
	s.order = append(s.order, created.ID)
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("task created",
		slog.String("task_id", created.ID.String()))
	return &created, nil
}

// FindAll implements store.TaskStore.FindAll.
func (s *TaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		task := s.tasks[id]
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID.
func (s *TaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// UpdateByID implements store.TaskStore.UpdateByID.
func (s *TaskStore) UpdateByID(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	patch.ApplyTo(&task)
	s.tasks[id] = task

	return &task, nil
}

// DeleteByID implements store.TaskStore.DeleteByID.
func (s *TaskStore) DeleteByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return &task, nil
}

// Search implements store.TaskStore.Search with the substring fallback.
// A task matches when any whitespace-separated term of query occurs in its
// title or description, ignoring case. The score is the total number of
// occurrences; ties keep insertion order.
func (s *TaskStore) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []*domain.Task{}, nil
	}

	type hit struct {
		task  domain.Task
		score int
	}

	s.mu.RLock()
	hits := make([]hit, 0)
	for _, id := range s.order {
		task := s.tasks[id]
		if score := Score(task, terms); score > 0 {
			hits = append(hits, hit{task: task, score: score})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	tasks := make([]*domain.Task, len(hits))
	for i := range hits {
		tasks[i] = &hits[i].task
	}
	return tasks, nil
}

// Score counts case-insensitive occurrences of each term in the task's
// title and description. Terms must already be lower-cased.
func Score(task domain.Task, terms []string) int {
	title := strings.ToLower(task.Title)
	description := strings.ToLower(task.Description)

	score := 0
	for _, term := range terms {
		score += strings.Count(title, term) + strings.Count(description, term)
	}
	return score
}
