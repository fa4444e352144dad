package model

import "time"

// Role names known to the system. Users may hold any combination; every
// account created through registration starts with RoleMember. The seed
// process grants the bootstrap admin all three.
const (
	RoleMember                = "Member"
	RoleFacilityAdministrator = "FacilityAdministrator"
	RoleSystemAdministrator   = "SystemAdministrator"
)

// AllRoles lists every role the seed process must ensure exists.
var AllRoles = []string{
	RoleMember,
	RoleFacilityAdministrator,
	RoleSystemAdministrator,
}

// User mirrors the `users` table plus the role names joined in through
// `user_roles`. The primary key is an opaque UUID string so that user
// identifiers can be embedded in token subjects without leaking insert
// order.
//
// Fields:
//
//	ID           – users.id (UUID string)
//	UserName     – unique login name
//	Email        – contact address
//	PasswordHash – bcrypt hash of the password
//	Roles        – role names resolved via user_roles at load time
//	CreatedAt    – timestamp of creation
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role mirrors a row in the `roles` table.
type Role struct {
	ID   uint8
	Name string
}
