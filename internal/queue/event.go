// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published when a checkout is confirmed. It carries
// the full order snapshot so downstream consumers (kitchen display,
// notifications, analytics) never have to query the primary database.
type OrderConfirmedEvent struct {
	OrderID     string               `json:"order_id"`
	UserID      uint64               `json:"user_id"`
	MetodoPago  string               `json:"metodo_pago"`
	Items       []OrderConfirmedItem `json:"items"`
	Total       float64              `json:"total"`
	ConfirmedAt string               `json:"confirmed_at"`
}

// OrderConfirmedItem is one cart line frozen at confirmation time.
type OrderConfirmedItem struct {
	MenuID   uint64  `json:"menu_id"`
	Nombre   string  `json:"nombre"`
	Precio   float64 `json:"precio"`
	Cantidad int     `json:"cantidad"`
}
