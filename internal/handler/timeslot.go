package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/middleware"
	"github.com/courtside/facility-reservation/internal/model"
	"github.com/courtside/facility-reservation/internal/repository"
)

// TimeSlotHandler implements the time-slot endpoints nested under a
// facility. Creation follows the ownership-chaining rule: only the
// facility's own creator may add slots to it — holding the
// FacilityAdministrator role for some other facility is not enough, and
// there is no admin override on creation. Update/delete use the regular
// owner-or-admin predicate.
type TimeSlotHandler struct {
	Facilities   repository.FacilityStore
	TimeSlots    repository.TimeSlotStore
	Reservations repository.ReservationStore
}

func NewTimeSlotHandler(facilities repository.FacilityStore, timeSlots repository.TimeSlotStore, reservations repository.ReservationStore) *TimeSlotHandler {
	return &TimeSlotHandler{Facilities: facilities, TimeSlots: timeSlots, Reservations: reservations}
}

type timeSlotReq struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func (r *timeSlotReq) validate() error {
	ve := &validationError{}
	if r.StartTime.IsZero() {
		ve.add("startTime", "'Start Time' must not be empty")
	}
	if r.EndTime.IsZero() {
		ve.add("endTime", "'End Time' must not be empty")
	}
	if !r.StartTime.IsZero() && !r.EndTime.IsZero() && !r.StartTime.Before(r.EndTime) {
		ve.add("startTime", "'Start Time' must be earlier than 'End Time'")
	}
	if ve.ok() {
		return nil
	}
	return ve
}

// List handles GET /api/v1/facility/:facilityId/timeslot.
func (h *TimeSlotHandler) List(c echo.Context) error {
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.TimeSlots.ListByFacility(ctx, facilityID)
	if err != nil {
		return respondError(c, err)
	}
	if len(slots) == 0 {
		return c.NoContent(http.StatusNotFound)
	}
	out := make([]timeSlotResp, 0, len(slots))
	for _, ts := range slots {
		reservations, err := h.Reservations.ListByTimeSlot(ctx, ts.ID)
		if err != nil {
			return respondError(c, err)
		}
		out = append(out, toTimeSlotResp(ts, reservations))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/v1/facility/:facilityId/timeslot/:id.
func (h *TimeSlotHandler) Get(c echo.Context) error {
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ts, err := h.TimeSlots.GetByID(ctx, facilityID, id)
	if err != nil {
		return respondError(c, err)
	}
	reservations, err := h.Reservations.ListByTimeSlot(ctx, ts.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTimeSlotResp(*ts, reservations))
}

// Create handles POST /api/v1/facility/:facilityId/timeslot.
func (h *TimeSlotHandler) Create(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	var req timeSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	facility, err := h.Facilities.GetByID(ctx, facilityID)
	if err != nil {
		return respondError(c, err)
	}
	if facility.CreatedByID != callerID {
		return respondError(c, errForbidden)
	}

	ts := &model.TimeSlot{
		FacilityID:  facilityID,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		CreatedByID: callerID,
	}
	if err := h.TimeSlots.Create(ctx, ts); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toTimeSlotResp(*ts, nil))
}

// Update handles PUT /api/v1/facility/:facilityId/timeslot/:id.
func (h *TimeSlotHandler) Update(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req timeSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ts, err := h.TimeSlots.GetByID(ctx, facilityID, id)
	if err != nil {
		return respondError(c, err)
	}
	if !auth.CanMutate(callerID, ts.CreatedByID, middleware.IsAdmin(c)) {
		return respondError(c, errForbidden)
	}

	ts.StartTime = req.StartTime.UTC()
	ts.EndTime = req.EndTime.UTC()
	if err := h.TimeSlots.Update(ctx, ts); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTimeSlotResp(*ts, nil))
}

// Delete handles DELETE /api/v1/facility/:facilityId/timeslot/:id.
func (h *TimeSlotHandler) Delete(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	facilityID, ok := parseID(c, "facilityId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ts, err := h.TimeSlots.GetByID(ctx, facilityID, id)
	if err != nil {
		return respondError(c, err)
	}
	if !auth.CanMutate(callerID, ts.CreatedByID, middleware.IsAdmin(c)) {
		return respondError(c, errForbidden)
	}
	if err := h.TimeSlots.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
