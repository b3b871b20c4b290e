package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StaticHandler serves the fixed promotional and contact content. Both
// screens are static by design; the data lives here rather than in MySQL.
type StaticHandler struct{}

func NewStaticHandler() *StaticHandler { return &StaticHandler{} }

type promotion struct {
	ID          int    `json:"id"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Imagen      string `json:"imagen"`
	ValidoHasta string `json:"valido_hasta"`
}

var promotions = []promotion{
	{
		ID:          1,
		Titulo:      "2x1 en Pizzas",
		Descripcion: "Lleva dos pizzas medianas por el precio de una, todos los martes.",
		Imagen:      "https://elcomensal.example.com/promos/pizzas-2x1.jpg",
		ValidoHasta: "31/12/2026",
	},
	{
		ID:          2,
		Titulo:      "Descuento en Hamburguesas",
		Descripcion: "20% de descuento en toda la línea de hamburguesas de la casa.",
		Imagen:      "https://elcomensal.example.com/promos/hamburguesas.jpg",
		ValidoHasta: "31/12/2026",
	},
	{
		ID:          3,
		Titulo:      "Bebidas Gratis",
		Descripcion: "Bebida gratis en pedidos mayores a Bs. 100.",
		Imagen:      "https://elcomensal.example.com/promos/bebidas.jpg",
		ValidoHasta: "31/12/2026",
	},
}

type contactInfo struct {
	Telefono  string `json:"telefono"`
	WhatsApp  string `json:"whatsapp"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

var contact = contactInfo{
	Telefono:  "+59176195915",
	WhatsApp:  "https://wa.me/59176195915",
	Facebook:  "https://www.facebook.com/elcomensal",
	Instagram: "https://www.instagram.com/elcomensal",
}

// Promotions returns the current promotions list.
func (h *StaticHandler) Promotions(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"promociones": promotions})
}

// Contact returns the restaurant's contact channels.
func (h *StaticHandler) Contact(c echo.Context) error {
	return c.JSON(http.StatusOK, contact)
}
