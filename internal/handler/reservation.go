package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/model"
)

// reservationCreator is the slice of ReservationRepo this handler needs.
type reservationCreator interface {
	Create(ctx context.Context, res *model.Reservation) error
}

// ReservationHandler accepts table reservations. Date and time are kept
// as the display strings the client captures ('dd/mm/yyyy' and 'hh:mm'),
// validated field by field rather than parsed into a timestamp.
type ReservationHandler struct {
	Reservations reservationCreator
}

func NewReservationHandler(r reservationCreator) *ReservationHandler {
	return &ReservationHandler{Reservations: r}
}

type reservationReq struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	People int    `json:"people"`
}

// Create validates and stores a reservation.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Date == "" || req.Time == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/date/time/people required"})
	}
	if req.People <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "people must be greater than zero"})
	}
	if err := validateDate(req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := validateTime(req.Time); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res := &model.Reservation{
		UserID: uid,
		Name:   req.Name,
		Date:   req.Date,
		Time:   req.Time,
		People: req.People,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.Create(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	return c.JSON(http.StatusCreated, res)
}

// validateDate checks a zero-padded 'dd/mm/yyyy' value. Field ranges are
// checked independently (day 01-31 regardless of month) and the year must
// fall between the current year and five years out.
func validateDate(s string) error {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return fmt.Errorf("date must be dd/mm/yyyy")
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return fmt.Errorf("day must be between 01 and 31")
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("month must be between 01 and 12")
	}
	year, err := strconv.Atoi(parts[2])
	now := time.Now().UTC().Year()
	if err != nil || year < now || year > now+5 {
		return fmt.Errorf("year must be between %d and %d", now, now+5)
	}
	return nil
}

// validateTime checks a zero-padded 'hh:mm' value.
func validateTime(s string) error {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return fmt.Errorf("time must be hh:mm")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("hour must be between 00 and 23")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("minute must be between 00 and 59")
	}
	return nil
}
