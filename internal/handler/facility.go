package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/middleware"
	"github.com/courtside/facility-reservation/internal/model"
	"github.com/courtside/facility-reservation/internal/repository"
)

// FacilityHandler implements the facility CRUD endpoints. Mutations run
// through the shared ownership predicate: only the facility's creator or a
// system administrator may update or delete it.
type FacilityHandler struct {
	Facilities repository.FacilityStore
	TimeSlots  repository.TimeSlotStore
}

func NewFacilityHandler(facilities repository.FacilityStore, timeSlots repository.TimeSlotStore) *FacilityHandler {
	return &FacilityHandler{Facilities: facilities, TimeSlots: timeSlots}
}

type facilityReq struct {
	Name                    string `json:"name"`
	Address                 string `json:"address"`
	Description             string `json:"description"`
	PictureURL              string `json:"pictureUrl"`
	PhoneNumber             string `json:"phoneNumber"`
	EmailAddress            string `json:"emailAddress"`
	MaxNumberOfParticipants int    `json:"maxNumberOfParticipants"`
	FacilityTypeID          int    `json:"facilityTypeId"`
}

func (r *facilityReq) validate() error {
	ve := &validationError{}
	if n := len(strings.TrimSpace(r.Name)); n < 2 || n > 255 {
		ve.add("name", "'Name' must be between 2 and 255 characters")
	}
	if n := len(strings.TrimSpace(r.Address)); n < 2 || n > 100 {
		ve.add("address", "'Address' must be between 2 and 100 characters")
	}
	if p := strings.TrimSpace(r.PhoneNumber); p == "" || len(p) > 20 {
		ve.add("phoneNumber", "'Phone Number' must not be empty and at most 20 characters")
	}
	if e := strings.TrimSpace(r.EmailAddress); e == "" || !strings.Contains(e, "@") {
		ve.add("emailAddress", "'Email Address' is not a valid email address")
	}
	if r.FacilityTypeID < int(model.FacilityTypeTennisCourt) || r.FacilityTypeID > int(model.FacilityTypeGym) {
		ve.add("facilityTypeId", "'Facility Type Id' must be a known facility type")
	}
	if ve.ok() {
		return nil
	}
	return ve
}

// List handles GET /api/v1/facility.
func (h *FacilityHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	facilities, err := h.Facilities.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	if len(facilities) == 0 {
		return c.NoContent(http.StatusNotFound)
	}
	out := make([]facilityResp, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, toFacilityResp(f, nil))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/v1/facility/:id and embeds the facility's time slots.
func (h *FacilityHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Facilities.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	slots, err := h.TimeSlots.ListByFacility(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	slotResps := make([]timeSlotResp, 0, len(slots))
	for _, ts := range slots {
		slotResps = append(slotResps, toTimeSlotResp(ts, nil))
	}
	return c.JSON(http.StatusOK, toFacilityResp(*f, slotResps))
}

// Create handles POST /api/v1/facility (FacilityAdministrator only; the
// role gate lives in the router).
func (h *FacilityHandler) Create(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req facilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f := &model.Facility{
		Name:            strings.TrimSpace(req.Name),
		Address:         strings.TrimSpace(req.Address),
		Description:     req.Description,
		PictureURL:      req.PictureURL,
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		EmailAddress:    strings.TrimSpace(req.EmailAddress),
		MaxParticipants: req.MaxNumberOfParticipants,
		FacilityType:    model.FacilityType(req.FacilityTypeID),
		CreatedByID:     callerID,
	}
	if err := h.Facilities.Create(ctx, f); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toFacilityResp(*f, nil))
}

// Update handles PUT /api/v1/facility/:id.
func (h *FacilityHandler) Update(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req facilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Facilities.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if !auth.CanMutate(callerID, f.CreatedByID, middleware.IsAdmin(c)) {
		return respondError(c, errForbidden)
	}

	f.Name = strings.TrimSpace(req.Name)
	f.Address = strings.TrimSpace(req.Address)
	f.Description = req.Description
	f.PictureURL = req.PictureURL
	f.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	f.EmailAddress = strings.TrimSpace(req.EmailAddress)
	f.MaxParticipants = req.MaxNumberOfParticipants
	f.FacilityType = model.FacilityType(req.FacilityTypeID)

	if err := h.Facilities.Update(ctx, f); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toFacilityResp(*f, nil))
}

// Delete handles DELETE /api/v1/facility/:id.
func (h *FacilityHandler) Delete(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Facilities.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if !auth.CanMutate(callerID, f.CreatedByID, middleware.IsAdmin(c)) {
		return respondError(c, errForbidden)
	}
	if err := h.Facilities.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
