package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcomensal/restaurante-api/internal/catalog"
	"github.com/elcomensal/restaurante-api/internal/model"
)

func TestMenuList(t *testing.T) {
	h := NewMenuHandler(newFakeMenu(), catalog.NewFeed())

	c, rec := newCtx(t, http.MethodGet, "/v1/menu", "", 0)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Items []model.MenuItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Items, 2)
}

// A disconnected client still receives the initial snapshot: the handler
// writes it before entering the wait loop, and the cancelled request
// context then ends the stream cleanly.
func TestMenuLiveSendsInitialSnapshot(t *testing.T) {
	feed := catalog.NewFeed()
	h := NewMenuHandler(newFakeMenu(), feed)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/menu/live", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	done := make(chan error, 1)
	go func() { done <- h.Live(c) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("live stream did not end on a cancelled request context")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	body := rec.Body.String()
	assert.Contains(t, body, "event: menu")
	assert.Contains(t, body, "Pizza")
	assert.Equal(t, 0, feed.Subscribers(), "teardown cancels the subscription")
}
