package repository

import (
	"context"
	"database/sql"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// OrderRepo persists confirmed checkouts in the 'pedidos' and
// 'pedido_items' tables. The order and its lines are written in one
// transaction so a half-recorded order never appears in the history.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Create inserts the order header and all of its lines.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO pedidos (id, user_id, metodo_pago, total, creado_en) VALUES (?,?,?,?,?)",
		o.ID, o.UserID, o.MetodoPago, o.Total, o.CreadoEn); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO pedido_items (pedido_id, menu_id, nombre, precio, cantidad) VALUES (?,?,?,?,?)",
			o.ID, it.MenuID, it.Nombre, it.Precio, it.Cantidad); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns a user's confirmed orders with their lines, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,metodo_pago,total,creado_en FROM pedidos WHERE user_id=? ORDER BY creado_en DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.MetodoPago, &o.Total, &o.CreadoEn); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *OrderRepo) listItems(ctx context.Context, pedidoID string) ([]model.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT pedido_id,menu_id,nombre,precio,cantidad FROM pedido_items WHERE pedido_id=?",
		pedidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.PedidoID, &it.MenuID, &it.Nombre, &it.Precio, &it.Cantidad); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
