// Package postgres provides the PostgreSQL implementation of the task store
// defined in the internal/store package. Tasks are kept as JSONB documents;
// a generated tsvector column over every string field of the document backs
// full-text search. The schema is managed by embedded goose migrations.
package postgres
