package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotions(t *testing.T) {
	h := NewStaticHandler()
	c, rec := newCtx(t, http.MethodGet, "/v1/promociones", "", 0)
	require.NoError(t, h.Promotions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Promociones []promotion `json:"promociones"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Promociones, 3)
	assert.Equal(t, "2x1 en Pizzas", got.Promociones[0].Titulo)
}

func TestContact(t *testing.T) {
	h := NewStaticHandler()
	c, rec := newCtx(t, http.MethodGet, "/v1/contacto", "", 0)
	require.NoError(t, h.Contact(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got contactInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "+59176195915", got.Telefono)
	assert.Contains(t, got.WhatsApp, "wa.me")
}
