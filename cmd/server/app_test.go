package main

import (
	"context"
	"testing"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_MemoryDriver(t *testing.T) {
	_, log := logger.NewTestLogger(t)

	app, err := newApplication(context.Background(), testConfig(), log)
	require.NoError(t, err)

	assert.Nil(t, app.db)
	assert.IsType(t, &memory.TaskStore{}, app.taskStore)
	assert.NotNil(t, app.taskService)
	assert.NotNil(t, app.metrics)
}

func TestNewApplication_UnsupportedDriver(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	cfg := testConfig()
	cfg.Database.Driver = "sqlite"

	_, err := newApplication(context.Background(), cfg, log)
	assert.ErrorContains(t, err, `unsupported database driver "sqlite"`)
}
