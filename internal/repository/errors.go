// Package repository holds the MySQL data access layer.  Each table gets
// its own repo type with plain database/sql queries; sentinel errors let
// handlers distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrConflict is returned when a write cannot proceed because of dependent
// state, such as deleting a title that still has a current champion or
// deleting a venue that still hosts events. Handlers should translate this
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
