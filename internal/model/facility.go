package model

import "time"

// FacilityType enumerates the kinds of sports facilities that can be
// registered. Stored as a small integer column.
type FacilityType uint8

const (
	FacilityTypeUnknown FacilityType = iota
	FacilityTypeTennisCourt
	FacilityTypeBasketballCourt
	FacilityTypeFootballPitch
	FacilityTypeSwimmingPool
	FacilityTypeGym
)

var facilityTypeNames = map[FacilityType]string{
	FacilityTypeUnknown:         "Unknown",
	FacilityTypeTennisCourt:     "TennisCourt",
	FacilityTypeBasketballCourt: "BasketballCourt",
	FacilityTypeFootballPitch:   "FootballPitch",
	FacilityTypeSwimmingPool:    "SwimmingPool",
	FacilityTypeGym:             "Gym",
}

// String returns the display name of the facility type.
func (t FacilityType) String() string {
	if name, ok := facilityTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Facility mirrors the `facilities` table. CreatedByID references the user
// who registered the facility; mutation rights derive from it.
type Facility struct {
	ID              uint64
	Name            string
	Address         string
	Description     string
	PictureURL      string
	PhoneNumber     string
	EmailAddress    string
	MaxParticipants int
	FacilityType    FacilityType
	CreatedByID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
