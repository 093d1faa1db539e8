package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskIDParam is the chi URL parameter holding the task id.
const TaskIDParam = "id"

// getPathParam extracts a required path parameter. Format checks are left to
// the service, which owns id parsing.
func getPathParam(r *http.Request, paramName string) (string, error) {
	value := chi.URLParam(r, paramName)
	if value == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	return value, nil
}
