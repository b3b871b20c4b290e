package model

import "time"

// Payment methods recorded on a confirmed order.
const (
	PaymentQR   = "qr"
	PaymentCard = "card"
)

// Order mirrors the `pedidos` table: the snapshot written when a checkout
// is confirmed. The ID is a UUID issued by this service, not by the
// database, so the event published to the broker carries the same value.
type Order struct {
	ID         string      `json:"id"`          // pedidos.id (uuid)
	UserID     uint64      `json:"-"`           // pedidos.user_id
	MetodoPago string      `json:"metodo_pago"` // pedidos.metodo_pago ("qr" | "card")
	Total      float64     `json:"total"`       // pedidos.total
	CreadoEn   time.Time   `json:"creado_en"`   // pedidos.creado_en
	Items      []OrderItem `json:"items"`
}

// OrderItem mirrors the `pedido_items` table: one cart line frozen at
// confirmation time. Nombre and Precio are denormalized so the history
// survives later menu edits.
type OrderItem struct {
	PedidoID string  `json:"-"`        // pedido_items.pedido_id
	MenuID   uint64  `json:"menu_id"`  // pedido_items.menu_id
	Nombre   string  `json:"nombre"`   // pedido_items.nombre
	Precio   float64 `json:"precio"`   // pedido_items.precio
	Cantidad int     `json:"cantidad"` // pedido_items.cantidad
}
