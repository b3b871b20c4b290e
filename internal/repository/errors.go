// Package repository defines error types reused across repositories. These
// sentinel values let handlers distinguish failure scenarios: ErrNotFound
// maps to HTTP 404, ErrEmailExists to 409 on signup, ErrProfileMissing marks
// the authenticated-but-no-role-record condition that the session layer must
// surface as a tagged state rather than an error page.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique email
// index on the users table. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup by ID matches no row. Handlers
// translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrProfileMissing is returned when an authenticated identity has no row
// in the usuarios table. Callers log it and keep the identity signed in
// with the role left unset.
var ErrProfileMissing = errors.New("profile record missing")
