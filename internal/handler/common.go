package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/model"
)

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil
}

// ----- shared response shapes -----

type reservationResp struct {
	ID                   uint64    `json:"id"`
	UserID               string    `json:"userId"`
	UserName             string    `json:"userName"`
	UserEmail            string    `json:"userEmail"`
	ReservationDate      time.Time `json:"reservationDate"`
	ReservationStatus    string    `json:"reservationStatus"`
	NumberOfParticipants int       `json:"numberOfParticipants"`
	TimeSlotID           uint64    `json:"timeSlotId"`
}

type timeSlotResp struct {
	ID           uint64            `json:"id"`
	StartTime    time.Time         `json:"startTime"`
	EndTime      time.Time         `json:"endTime"`
	FacilityID   uint64            `json:"facilityId"`
	CreatedByID  string            `json:"createdById"`
	Reservations []reservationResp `json:"reservations,omitempty"`
}

type facilityResp struct {
	ID                      uint64         `json:"id"`
	Name                    string         `json:"name"`
	Address                 string         `json:"address"`
	Description             string         `json:"description"`
	PictureURL              string         `json:"pictureUrl"`
	PhoneNumber             string         `json:"phoneNumber"`
	EmailAddress            string         `json:"emailAddress"`
	MaxNumberOfParticipants int            `json:"maxNumberOfParticipants"`
	FacilityType            string         `json:"facilityType"`
	FacilityTypeID          int            `json:"facilityTypeId"`
	CreatedByID             string         `json:"createdById"`
	TimeSlots               []timeSlotResp `json:"timeSlots,omitempty"`
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ID:                   r.ID,
		UserID:               r.UserID,
		UserName:             r.UserName,
		UserEmail:            r.UserEmail,
		ReservationDate:      r.ReservationDate,
		ReservationStatus:    r.Status.String(),
		NumberOfParticipants: r.Participants,
		TimeSlotID:           r.TimeSlotID,
	}
}

func toTimeSlotResp(ts model.TimeSlot, reservations []model.Reservation) timeSlotResp {
	resp := timeSlotResp{
		ID:          ts.ID,
		StartTime:   ts.StartTime,
		EndTime:     ts.EndTime,
		FacilityID:  ts.FacilityID,
		CreatedByID: ts.CreatedByID,
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, toReservationResp(r))
	}
	return resp
}

func toFacilityResp(f model.Facility, slots []timeSlotResp) facilityResp {
	return facilityResp{
		ID:                      f.ID,
		Name:                    f.Name,
		Address:                 f.Address,
		Description:             f.Description,
		PictureURL:              f.PictureURL,
		PhoneNumber:             f.PhoneNumber,
		EmailAddress:            f.EmailAddress,
		MaxNumberOfParticipants: f.MaxParticipants,
		FacilityType:            f.FacilityType.String(),
		FacilityTypeID:          int(f.FacilityType),
		CreatedByID:             f.CreatedByID,
		TimeSlots:               slots,
	}
}
