// Package memory provides an in-process implementation of store.TaskStore.
//
// It has no full-text index. Search falls back to a case-insensitive
// substring match over title and description, ranked by how many times the
// query occurs. This approximates the relevance ranking of the PostgreSQL
// store and is intended for local development and tests.
package memory
