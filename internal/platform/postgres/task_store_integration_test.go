//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/phrazzld/task-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func setupStore(t *testing.T, fn func(t *testing.T, s *postgres.PostgresTaskStore)) {
	t.Helper()
	db := testdb.GetTestDBWithT(t)
	testdb.SetupTestDatabaseSchema(t, db)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(context.Background(), "DELETE FROM tasks")
		require.NoError(t, err)
		fn(t, postgres.NewPostgresTaskStore(tx, nil))
	})
}

func insert(t *testing.T, s *postgres.PostgresTaskStore, title, description string) *domain.Task {
	t.Helper()
	task, err := s.Insert(context.Background(), &domain.Task{Title: title, Description: description})
	require.NoError(t, err)
	return task
}

func TestPostgresTaskStore_RoundTrip(t *testing.T) {
	setupStore(t, func(t *testing.T, s *postgres.PostgresTaskStore) {
		ctx := context.Background()

		created := insert(t, s, "Buy milk", "2 litres")
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.Completed)

		found, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, created.ID, all[0].ID)
	})
}

func TestPostgresTaskStore_InsertRejectsBlankTitle(t *testing.T) {
	setupStore(t, func(t *testing.T, s *postgres.PostgresTaskStore) {
		_, err := s.Insert(context.Background(), &domain.Task{Title: " "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresTaskStore_UpdateByID(t *testing.T) {
	setupStore(t, func(t *testing.T, s *postgres.PostgresTaskStore) {
		ctx := context.Background()
		created := insert(t, s, "Walk dog", "around the park")

		updated, err := s.UpdateByID(ctx, created.ID, domain.TaskPatch{Completed: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)

		unchanged, err := s.UpdateByID(ctx, created.ID, domain.TaskPatch{})
		require.NoError(t, err)
		assert.Equal(t, updated, unchanged)

		retitled, err := s.UpdateByID(ctx, created.ID, domain.TaskPatch{Title: strPtr("Walk cat")})
		require.NoError(t, err)
		assert.Equal(t, "Walk cat", retitled.Title)
		assert.True(t, retitled.Completed)

		_, err = s.UpdateByID(ctx, uuid.New(), domain.TaskPatch{Completed: boolPtr(false)})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_DeleteByID(t *testing.T) {
	setupStore(t, func(t *testing.T, s *postgres.PostgresTaskStore) {
		ctx := context.Background()
		created := insert(t, s, "Buy milk", "")

		deleted, err := s.DeleteByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, deleted)

		_, err = s.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = s.DeleteByID(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_Search(t *testing.T) {
	setupStore(t, func(t *testing.T, s *postgres.PostgresTaskStore) {
		ctx := context.Background()
		once := insert(t, s, "Buy milk", "")
		twice := insert(t, s, "Milk the cow", "fresh milk")
		insert(t, s, "Walk dog", "")

		results, err := s.Search(ctx, "milk")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, twice.ID, results[0].ID)
		assert.Equal(t, once.ID, results[1].ID)

		none, err := s.Search(ctx, "zebra")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}
