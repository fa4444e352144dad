package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/middleware"
	"github.com/courtside/facility-reservation/internal/model"
	"github.com/courtside/facility-reservation/internal/queue"
	"github.com/courtside/facility-reservation/internal/repository"
	"github.com/courtside/facility-reservation/internal/service"
)

// ReservationHandler implements the reservation endpoints nested under a
// facility's time slot. Any authenticated user may book for themself; the
// owner of a reservation is the reserving user, so facility owners cannot
// edit other members' bookings unless they are system administrators.
type ReservationHandler struct {
	Facilities   repository.FacilityStore
	TimeSlots    repository.TimeSlotStore
	Reservations repository.ReservationStore
}

func NewReservationHandler(facilities repository.FacilityStore, timeSlots repository.TimeSlotStore, reservations repository.ReservationStore) *ReservationHandler {
	return &ReservationHandler{Facilities: facilities, TimeSlots: timeSlots, Reservations: reservations}
}

type reservationReq struct {
	ReservationDate      time.Time `json:"reservationDate"`
	NumberOfParticipants int       `json:"numberOfParticipants"`
}

func (r *reservationReq) validate() error {
	ve := &validationError{}
	if r.ReservationDate.IsZero() {
		ve.add("reservationDate", "'Reservation Date' must not be empty")
	}
	if r.NumberOfParticipants < 1 {
		ve.add("numberOfParticipants", "'Number Of Participants' must be at least 1")
	}
	if ve.ok() {
		return nil
	}
	return ve
}

// List handles GET .../timeslot/:timeSlotId/reservation.
func (h *ReservationHandler) List(c echo.Context) error {
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	timeSlotID, ok := parseID(c, "timeSlotId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.TimeSlots.GetByID(ctx, facilityID, timeSlotID); err != nil {
		return respondError(c, err)
	}
	reservations, err := h.Reservations.ListByTimeSlot(ctx, timeSlotID)
	if err != nil {
		return respondError(c, err)
	}
	if len(reservations) == 0 {
		return c.NoContent(http.StatusNotFound)
	}
	out := make([]reservationResp, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET .../reservation/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	timeSlotID, ok := parseID(c, "timeSlotId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot id"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, facilityID, timeSlotID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(*res))
}

// Create handles POST .../reservation. The reservation is always created
// for the calling user. On success a reservation.confirmed event is
// published; a broker outage is logged by the publisher and never fails
// the booking.
func (h *ReservationHandler) Create(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	timeSlotID, ok := parseID(c, "timeSlotId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slot, err := h.TimeSlots.GetByID(ctx, facilityID, timeSlotID)
	if err != nil {
		return respondError(c, err)
	}
	facility, err := h.Facilities.GetByID(ctx, facilityID)
	if err != nil {
		return respondError(c, err)
	}

	res := &model.Reservation{
		TimeSlotID:      timeSlotID,
		UserID:          callerID,
		ReservationDate: req.ReservationDate.UTC(),
		Participants:    req.NumberOfParticipants,
		Status:          model.ReservationConfirmed,
	}
	if err := h.Reservations.Create(ctx, res); err != nil {
		return respondError(c, err)
	}

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = service.PublishReservationConfirmed(pubCtx, queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			UserID:        res.UserID,
			UserName:      res.UserName,
			FacilityID:    facility.ID,
			FacilityName:  facility.Name,
			TimeSlotID:    slot.ID,
			StartTime:     slot.StartTime.Format(time.RFC3339),
			EndTime:       slot.EndTime.Format(time.RFC3339),
			Date:          res.ReservationDate.Format("2006-01-02"),
			Participants:  res.Participants,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, toReservationResp(*res))
}

// Update handles PUT .../reservation/:id.
func (h *ReservationHandler) Update(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	timeSlotID, ok := parseID(c, "timeSlotId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot id"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, facilityID, timeSlotID, id)
	if err != nil {
		return respondError(c, err)
	}
	if !auth.CanMutate(callerID, res.UserID, middleware.IsAdmin(c)) {
		return respondError(c, errForbidden)
	}

	res.ReservationDate = req.ReservationDate.UTC()
	res.Participants = req.NumberOfParticipants
	if err := h.Reservations.Update(ctx, res); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(*res))
}

// Delete handles DELETE .../reservation/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	timeSlotID, ok := parseID(c, "timeSlotId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot id"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, facilityID, timeSlotID, id)
	if err != nil {
		return respondError(c, err)
	}
	if !auth.CanMutate(callerID, res.UserID, middleware.IsAdmin(c)) {
		return respondError(c, errForbidden)
	}
	if err := h.Reservations.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
