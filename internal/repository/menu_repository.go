package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// MenuRepo persists sellable items in the 'menu' table. The customer app
// reads the whole collection; the admin editor issues create/update/delete
// against single rows by id.
type MenuRepo struct{ DB *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{DB: db} }

// ListAll returns every menu item ordered by id.
func (r *MenuRepo) ListAll(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,nombre,url,precio,descripcion FROM menu ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.MenuItem, 0)
	for rows.Next() {
		var it model.MenuItem
		if err := rows.Scan(&it.ID, &it.Nombre, &it.URL, &it.Precio, &it.Descripcion); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID fetches one item. ErrNotFound when the id matches no row.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (model.MenuItem, error) {
	var it model.MenuItem
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,nombre,url,precio,descripcion FROM menu WHERE id=? LIMIT 1",
		id).Scan(&it.ID, &it.Nombre, &it.URL, &it.Precio, &it.Descripcion)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MenuItem{}, ErrNotFound
	}
	return it, err
}

// Create inserts an item and returns its generated id.
func (r *MenuRepo) Create(ctx context.Context, it *model.MenuItem) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO menu (nombre, url, precio, descripcion) VALUES (?,?,?,?)",
		it.Nombre, it.URL, it.Precio, it.Descripcion)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// Update overwrites all four fields of one item. ErrNotFound when no row
// was affected.
func (r *MenuRepo) Update(ctx context.Context, it *model.MenuItem) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE menu SET nombre=?, url=?, precio=?, descripcion=? WHERE id=?",
		it.Nombre, it.URL, it.Precio, it.Descripcion, it.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 on a no-op update of an existing row; check existence.
		if _, err := r.GetByID(ctx, it.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes one item by id. ErrNotFound when no row was affected.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM menu WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
