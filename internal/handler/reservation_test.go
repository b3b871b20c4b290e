package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcomensal/restaurante-api/internal/model"
)

type fakeReservations struct {
	created []*model.Reservation
}

func (f *fakeReservations) Create(_ context.Context, res *model.Reservation) error {
	res.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, res)
	return nil
}

func (f *fakeReservations) ListAll(_ context.Context) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0, len(f.created))
	for i := len(f.created) - 1; i >= 0; i-- {
		out = append(out, *f.created[i])
	}
	return out, nil
}

func TestReservationCreate(t *testing.T) {
	repo := &fakeReservations{}
	h := NewReservationHandler(repo)

	year := time.Now().UTC().Year()
	body := fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","time":"19:30","people":4}`, year+1)
	c, rec := newCtx(t, http.MethodPost, "/v1/reservas", body, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, repo.created, 1)
	got := repo.created[0]
	assert.Equal(t, uint64(1), got.UserID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, fmt.Sprintf("15/08/%d", year+1), got.Date)
	assert.Equal(t, "19:30", got.Time)
	assert.Equal(t, 4, got.People)
}

func TestReservationValidation(t *testing.T) {
	year := time.Now().UTC().Year()
	cases := []struct {
		name string
		body string
	}{
		{"missing name", fmt.Sprintf(`{"date":"15/08/%d","time":"19:30","people":4}`, year)},
		{"missing date", `{"name":"Ana","time":"19:30","people":4}`},
		{"missing time", fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","people":4}`, year)},
		{"zero people", fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","time":"19:30","people":0}`, year)},
		{"negative people", fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","time":"19:30","people":-2}`, year)},
		{"day out of range", fmt.Sprintf(`{"name":"Ana","date":"32/08/%d","time":"19:30","people":4}`, year)},
		{"month out of range", fmt.Sprintf(`{"name":"Ana","date":"15/13/%d","time":"19:30","people":4}`, year)},
		{"year in the past", `{"name":"Ana","date":"15/08/2020","time":"19:30","people":4}`},
		{"year too far out", fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","time":"19:30","people":4}`, year+6)},
		{"unpadded day", fmt.Sprintf(`{"name":"Ana","date":"5/08/%d","time":"19:30","people":4}`, year)},
		{"hour out of range", fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","time":"24:00","people":4}`, year)},
		{"minute out of range", fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","time":"19:60","people":4}`, year)},
		{"unpadded hour", fmt.Sprintf(`{"name":"Ana","date":"15/08/%d","time":"9:30","people":4}`, year)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeReservations{}
			h := NewReservationHandler(repo)
			c, rec := newCtx(t, http.MethodPost, "/v1/reservas", tc.body, 1)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, repo.created)
		})
	}
}

func TestReservationBoundaryValues(t *testing.T) {
	year := time.Now().UTC().Year()
	cases := []string{
		fmt.Sprintf(`{"name":"Ana","date":"01/01/%d","time":"00:00","people":1}`, year),
		fmt.Sprintf(`{"name":"Ana","date":"31/12/%d","time":"23:59","people":12}`, year+5),
	}
	for _, body := range cases {
		repo := &fakeReservations{}
		h := NewReservationHandler(repo)
		c, rec := newCtx(t, http.MethodPost, "/v1/reservas", body, 1)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", body)
	}
}
