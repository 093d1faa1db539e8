package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// SearchQueryParam is the query-string key read by Search.
const SearchQueryParam = "query"

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, a default logger will be used.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tasks cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Routes registers the task endpoints on r, which is expected to be mounted
// at /task. The static /search segment takes precedence over /{id}.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Get("/", h.FindAll)
	r.Post("/", h.Create)
	r.Get("/search", h.Search)
	r.Get("/{"+TaskIDParam+"}", h.FindOne)
	r.Patch("/{"+TaskIDParam+"}", h.Update)
	r.Delete("/{"+TaskIDParam+"}", h.Remove)
}

// FindAll handles GET /task requests
func (h *TaskHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponses(tasks))
}

// Search handles GET /task/search?query= requests.
// A query that is blank after trimming is rejected before the service is called;
// a non-blank query is forwarded untrimmed.
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query := r.URL.Query().Get(SearchQueryParam)
	if strings.TrimSpace(query) == "" {
		log.Debug("rejecting blank search query")
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgEmptySearchQuery)
		return
	}

	tasks, err := h.tasks.SearchTasks(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponses(tasks))
}

// FindOne handles GET /task/{id} requests
func (h *TaskHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	id, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Create handles POST /task requests
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestBody, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req.ToInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, toTaskResponse(task))
}

// Update handles PATCH /task/{id} requests.
// An empty body is treated as an empty patch.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestBody, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, req.ToPatch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Remove handles DELETE /task/{id} requests.
// The response body is the task as it was before deletion.
func (h *TaskHandler) Remove(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.DeleteTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("task deleted", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}
