package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacilityTypeString(t *testing.T) {
	assert.Equal(t, "TennisCourt", FacilityTypeTennisCourt.String())
	assert.Equal(t, "Gym", FacilityTypeGym.String())
	assert.Equal(t, "Unknown", FacilityType(99).String())
}

func TestReservationStatusString(t *testing.T) {
	assert.Equal(t, "Pending", ReservationPending.String())
	assert.Equal(t, "Confirmed", ReservationConfirmed.String())
	assert.Equal(t, "Cancelled", ReservationCancelled.String())
	assert.Equal(t, "Unknown", ReservationStatus(7).String())
}

func TestUserHasRole(t *testing.T) {
	u := &User{Roles: []string{RoleMember, RoleFacilityAdministrator}}
	assert.True(t, u.HasRole(RoleMember))
	assert.True(t, u.HasRole(RoleFacilityAdministrator))
	assert.False(t, u.HasRole(RoleSystemAdministrator))

	var empty User
	assert.False(t, empty.HasRole(RoleMember))
}
