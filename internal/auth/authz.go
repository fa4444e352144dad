package auth

// CanMutate is the single ownership predicate applied to every facility,
// time-slot and reservation mutation: the caller must be the resource's
// creator or hold the SystemAdministrator role. All resource handlers
// depend on this function rather than re-implementing the check, so the
// rule cannot drift between resource types.
//
// For reservations the owner is the reserving user, not the owner of the
// facility the slot belongs to.
func CanMutate(callerID, ownerID string, isAdmin bool) bool {
	return callerID == ownerID || isAdmin
}
