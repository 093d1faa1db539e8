// Package service contains the application use cases for tasks. It sits
// between the HTTP layer in internal/api and the storage implementations
// behind store.TaskStore.
//
// The service layer:
//   - parses raw ids and rejects malformed ones with domain.ErrInvalidID
//   - validates task input before it reaches storage
//   - translates store errors into ErrTaskNotFound or a TaskServiceError
//
// It depends on domain entities and the store interface, never on a specific
// storage backend.
package service
