package repository

import (
	"context"
	"database/sql"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// ReservationRepo persists table bookings in the 'reservations' table.
// Write-once from the customer's side; listing is admin-only.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// Create inserts a reservation and returns its generated id.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	out, err := r.DB.ExecContext(ctx,
		"INSERT INTO reservations (user_id, name, date, time, people, created_at) VALUES (?,?,?,?,?,NOW())",
		res.UserID, res.Name, res.Date, res.Time, res.People)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// ListAll returns every reservation, newest first.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,name,date,time,people,created_at FROM reservations ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.Name, &res.Date, &res.Time, &res.People, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
