// Package api handles incoming HTTP requests for tasks: request decoding,
// validation and response formatting. It translates HTTP concerns to
// service.TaskService calls and service errors back to status codes.
package api
