package model

import "time"

// Roles stored in the usuarios.rol column. Role is assigned at signup
// (always RoleCliente) and never changed through this API.
const (
	RoleAdmin   = "admin"
	RoleCliente = "cliente"
)

// User represents a row in the `users` table. It carries only the
// authentication identity: credentials live here, the profile and role
// live in the separate `usuarios` table so that an authenticated user
// without a profile row remains representable.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// Profile represents a row in the `usuarios` table, keyed by the auth
// identity. It is the role record consulted after every sign-in; a
// missing row is an expected (logged) condition, not a fatal one.
//
// Fields:
//
//	UserID        – owning users.id.
//	Email         – denormalized copy of the email.
//	Nombre        – display name.
//	Rol           – "admin" or "cliente".
//	FechaCreacion – when the profile was created.
type Profile struct {
	UserID        uint64    // usuarios.user_id
	Email         string    // usuarios.email
	Nombre        string    // usuarios.nombre
	Rol           string    // usuarios.rol
	FechaCreacion time.Time // usuarios.fecha_creacion
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user; only the SHA-256 hash of the raw
// token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
