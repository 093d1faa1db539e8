package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// searchConfig is the text search configuration used to build and query the
// search vector. It must match the one in the migration.
const searchConfig = "simple"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// taskDocument is the JSONB body of a row. ID and created_at live in their own columns.
type taskDocument struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task domain.Task
		raw  []byte
	)
	if err := row.Scan(&task.ID, &raw, &task.CreatedAt); err != nil {
		return nil, err
	}

	var doc taskDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode task document: %w", err)
	}

	task.Title = doc.Title
	task.Description = doc.Description
	task.Completed = doc.Completed
	task.CreatedAt = task.CreatedAt.UTC()
	return &task, nil
}

// Insert implements store.TaskStore.Insert.
// The database assigns the id and created_at.
func (s *PostgresTaskStore) Insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during insert", slog.String("error", err.Error()))
		return nil, err
	}

	doc, err := json.Marshal(taskDocument{
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode task document: %w", err)
	}

	query := `
		INSERT INTO tasks (document)
		VALUES ($1::jsonb)
		RETURNING id, document, created_at
	`

	created, err := scanTask(s.db.QueryRowContext(ctx, query, string(doc)))
	if err != nil {
		log.Error("failed to insert task", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "insert", "failed to insert task", MapError(err))
	}

	log.Info("task created successfully", slog.String("task_id", created.ID.String()))
	return created, nil
}

// FindAll implements store.TaskStore.FindAll.
// Rows come back in the order PostgreSQL yields them; no sort is applied.
func (s *PostgresTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, document, created_at
		FROM tasks
	`

	tasks, err := s.queryTasks(ctx, query)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to list tasks", err)
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := `
		SELECT id, document, created_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, s.handleRowError(log, "get", id, err)
	}

	return task, nil
}

// UpdateByID implements store.TaskStore.UpdateByID.
// The patch is merged into the stored document, so absent fields are kept.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) UpdateByID(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("task patch validation failed",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	// TaskPatch omits nil fields, so the merge only touches present ones
	changes, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task patch: %w", err)
	}

	query := `
		UPDATE tasks
		SET document = document || $2::jsonb
		WHERE id = $1
		RETURNING id, document, created_at
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, string(changes)))
	if err != nil {
		return nil, s.handleRowError(log, "update", id, err)
	}

	log.Info("task updated successfully", slog.String("task_id", id.String()))
	return task, nil
}

// DeleteByID implements store.TaskStore.DeleteByID.
// RETURNING yields the row as it was before removal.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) DeleteByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1
		RETURNING id, document, created_at
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, s.handleRowError(log, "delete", id, err)
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return task, nil
}

// Search implements store.TaskStore.Search.
// Matching and ranking are done by PostgreSQL: websearch_to_tsquery against
// the generated search vector, ordered by ts_rank_cd descending.
func (s *PostgresTaskStore) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sqlQuery := `
		SELECT t.id, t.document, t.created_at
		FROM tasks t, websearch_to_tsquery('` + searchConfig + `', $1) AS q
		WHERE t.search_vector @@ q
		ORDER BY ts_rank_cd(t.search_vector, q) DESC
	`

	tasks, err := s.queryTasks(ctx, sqlQuery, query)
	if err != nil {
		log.Error("failed to search tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "search", "failed to search tasks", err)
	}

	log.Debug("task search completed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// queryTasks runs a multi-row query and scans every row.
// It always returns a non-nil slice on success.
func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", MapError(err))
	}

	return tasks, nil
}

// handleRowError logs and maps the error of a single-row operation.
func (s *PostgresTaskStore) handleRowError(log *slog.Logger, op string, id uuid.UUID, err error) error {
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrNotFound) {
		log.Debug("task not found",
			slog.String("operation", op),
			slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	level := slog.LevelError
	if IsCheckConstraintViolation(err) {
		level = slog.LevelWarn
	}
	log.Log(context.Background(), level, "task operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.String("task_id", id.String()))
	return store.NewStoreError("task", op, "task operation failed", mapped)
}
