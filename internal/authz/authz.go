// Package authz holds the role model and the ownership rules for gyms and trial bookings.
// Every decision here is a pure function of the caller and the target's owner.
package authz

import (
	"strings"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
)

var (
	ErrForbidden   = apperror.New(apperror.KindForbidden, "permission denied")
	ErrInvalidRole = apperror.New(apperror.KindBadRequest, "invalid role")
)

// Role is the closed set of account roles.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleGymOwner Role = "gym_owner"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleSeeker, RoleGymOwner, RoleCustomer, RoleAdmin}

// ParseRole converts s into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleGymOwner, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// String returns the wire name of the role.
func (r Role) String() string { return string(r) }

// Identity is the caller as resolved by the auth layer for one request.
type Identity struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

func (i Identity) canManageGyms() bool {
	return i.Role == RoleGymOwner || i.Role == RoleAdmin
}

// GymCreation allows gym owners and admins to list new gyms.
func GymCreation(caller Identity) error {
	if !caller.canManageGyms() {
		return ErrForbidden
	}
	return nil
}

// GymMutation allows admins, and gym owners acting on their own gym, to change or remove it.
func GymMutation(caller Identity, gymOwnerID string) error {
	if !caller.canManageGyms() {
		return ErrForbidden
	}
	if caller.IsAdmin() || caller.ID == gymOwnerID {
		return nil
	}
	return ErrForbidden
}

// TrialStatusUpdate allows the owner of the booked gym, or an admin, to decide on a trial request.
// The caller's role is irrelevant apart from admin.
func TrialStatusUpdate(caller Identity, gymOwnerID string) error {
	if caller.IsAdmin() || (caller.ID != "" && caller.ID == gymOwnerID) {
		return nil
	}
	return ErrForbidden
}

// TrialView allows the requester in addition to whoever may update the booking.
func TrialView(caller Identity, requesterID, gymOwnerID string) error {
	if caller.ID != "" && caller.ID == requesterID {
		return nil
	}
	return TrialStatusUpdate(caller, gymOwnerID)
}
