package model

// MenuItem mirrors the `menu` table. Column names keep the Spanish field
// names the mobile client already uses. Precio is a DECIMAL column read
// as float64.
type MenuItem struct {
	ID          uint64  `json:"id"`          // menu.id
	Nombre      string  `json:"nombre"`      // menu.nombre
	URL         string  `json:"url"`         // menu.url (image reference)
	Precio      float64 `json:"precio"`      // menu.precio
	Descripcion string  `json:"descripcion"` // menu.descripcion
}
