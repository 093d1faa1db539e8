package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc, nil)
	r := chi.NewRouter()
	r.Route("/task", h.Routes)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func testTask() *domain.Task {
	return &domain.Task{
		ID:          uuid.MustParse("6f1c2a1e-7b5d-4c1e-9f0a-1b2c3d4e5f60"),
		Title:       "Buy milk",
		Description: "2 litres",
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewTaskHandler_PanicsOnNilService(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, nil) })
}

func TestTaskHandler_FindAll(t *testing.T) {
	t.Run("returns tasks", func(t *testing.T) {
		svc := &mocks.MockTaskService{Tasks: []*domain.Task{testTask()}}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/task", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{
			"id": "6f1c2a1e-7b5d-4c1e-9f0a-1b2c3d4e5f60",
			"title": "Buy milk",
			"description": "2 litres",
			"completed": false,
			"created_at": "2024-05-01T12:00:00Z"
		}]`, rec.Body.String())
	})

	t.Run("empty list is an array", func(t *testing.T) {
		svc := &mocks.MockTaskService{Tasks: []*domain.Task{}}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/task", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			DefaultError: service.NewTaskServiceError("list", "failed to list tasks", errors.New("connection refused")),
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/task", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, MsgUnexpected, body.Message)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestTaskHandler_Search(t *testing.T) {
	t.Run("blank query never reaches the service", func(t *testing.T) {
		for _, path := range []string{"/task/search", "/task/search?query=", "/task/search?query=%20%20"} {
			svc := &mocks.MockTaskService{}
			rec := doRequest(t, newTestRouter(svc), http.MethodGet, path, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Equal(t, MsgEmptySearchQuery, decodeError(t, rec).Message, path)
			assert.False(t, svc.Called("SearchTasks"), path)
		}
	})

	t.Run("query forwarded untrimmed", func(t *testing.T) {
		var got string
		svc := &mocks.MockTaskService{
			SearchTasksFn: func(ctx context.Context, query string) ([]*domain.Task, error) {
				got = query
				return []*domain.Task{testTask()}, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/task/search?query=%20milk", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, " milk", got)
		assert.False(t, svc.Called("GetTask"))
	})
}

func TestTaskHandler_FindOne(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "not found", err: service.ErrTaskNotFound, wantStatus: http.StatusNotFound, wantMsg: MsgTaskNotFound},
		{
			name:       "invalid id",
			err:        domain.NewValidationError("id", "must be a valid UUID", domain.ErrInvalidID),
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidTaskID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			svc := &mocks.MockTaskService{
				GetTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
					gotID = id
					if tt.err != nil {
						return nil, tt.err
					}
					return testTask(), nil
				},
			}
			rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/task/some-id", "")

			assert.Equal(t, "some-id", gotID)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeError(t, rec).Message)
			}
		})
	}
}

func TestTaskHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var got domain.NewTaskInput
		svc := &mocks.MockTaskService{
			CreateTaskFn: func(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error) {
				got = input
				return testTask(), nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/task", `{"title":"Buy milk","completed":true,"owner":"ignored"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Nil(t, got.Description)
		require.NotNil(t, got.Completed)
		assert.True(t, *got.Completed)

		var body TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, testTask().ID.String(), body.ID)
	})

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{"title":`, wantMsg: MsgInvalidRequestBody},
		{name: "wrong type", body: `{"title":"x","completed":"yes"}`, wantMsg: MsgInvalidRequestBody},
		{name: "missing title", body: `{"description":"x"}`, wantMsg: "Invalid title: required field"},
		{name: "empty title", body: `{"title":""}`, wantMsg: "Invalid title: required field"},
		{name: "empty body", body: "", wantMsg: MsgInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockTaskService{}
			rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/task", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec).Message)
			assert.False(t, svc.Called("CreateTask"))
		})
	}

	t.Run("blank title rejected by service", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			DefaultError: domain.NewValidationError("title", "is required", domain.ErrEmptyTitle),
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/task", `{"title":"   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "title is required", decodeError(t, rec).Message)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("partial patch", func(t *testing.T) {
		var gotPatch domain.TaskPatch
		svc := &mocks.MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
				gotPatch = patch
				task := testTask()
				patch.ApplyTo(task)
				return task, nil
			},
		}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, "/task/"+testTask().ID.String(), `{"completed":true}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, gotPatch.Title)
		assert.Nil(t, gotPatch.Description)
		require.NotNil(t, gotPatch.Completed)

		var body TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Completed)
		assert.Equal(t, "Buy milk", body.Title)
	})

	t.Run("empty body is an empty patch", func(t *testing.T) {
		svc := &mocks.MockTaskService{Task: testTask()}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, "/task/"+testTask().ID.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.Called("UpdateTask"))
	})

	t.Run("wrong type", func(t *testing.T) {
		svc := &mocks.MockTaskService{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, "/task/abc", `{"title":5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, svc.Called("UpdateTask"))
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: service.ErrTaskNotFound}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, "/task/"+uuid.NewString(), `{"title":"x"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandler_Remove(t *testing.T) {
	t.Run("returns deleted task", func(t *testing.T) {
		svc := &mocks.MockTaskService{Task: testTask()}
		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, "/task/"+testTask().ID.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var body TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Buy milk", body.Title)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: service.ErrTaskNotFound}
		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, "/task/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, MsgTaskNotFound, decodeError(t, rec).Message)
	})
}
