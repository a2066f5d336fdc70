package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleOffice     Role = "OFFICE"
	RoleTechnician Role = "TECHNICIAN"
)

// Principal is the authenticated identity extracted from the access token.
// It is passed explicitly into every service call; business logic never
// reads identity from ambient state.
type Principal struct {
	UserID       uuid.UUID
	Role         Role
	TechnicianID *uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsOffice() bool {
	return p.Role == RoleOffice
}

func (p Principal) IsTechnician() bool {
	return p.Role == RoleTechnician
}

// CanManageSchedule reports whether the principal may create, reschedule or
// cancel maintenance visits on behalf of the office.
func (p Principal) CanManageSchedule() bool {
	return p.IsAdmin() || p.IsOffice()
}
