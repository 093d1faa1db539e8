// Package domain contains the task entity, its partial-update value object,
// and the error taxonomy shared by every layer of the application. It has no
// knowledge of HTTP or of the storage engine.
package domain
