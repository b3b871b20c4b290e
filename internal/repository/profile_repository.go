package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// ProfileRepo persists role records in the 'usuarios' table, keyed by the
// auth identity. Signup writes one row with rol='cliente'; sign-in reads it
// back to learn the role. A missing row is reported as ErrProfileMissing so
// the caller can keep the identity authenticated with the role unset.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// Create inserts the profile row for a freshly registered identity.
func (r *ProfileRepo) Create(ctx context.Context, userID uint64, email, nombre, rol string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (user_id, email, nombre, rol, fecha_creacion) VALUES (?,?,?,?,NOW())",
		userID, email, nombre, rol)
	return err
}

// GetByUserID fetches the profile for an identity. ErrProfileMissing when
// the row does not exist.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,email,nombre,rol,fecha_creacion FROM usuarios WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.Email, &p.Nombre, &p.Rol, &p.FechaCreacion)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrProfileMissing
	}
	return p, err
}
