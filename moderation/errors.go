package moderation

import (
	"errors"
	"fmt"
)

var (
	ErrRolesNotConfigured    = errors.New("moderation roles are not configured for this server")
	ErrMissingPermissions    = errors.New("missing required role or permission")
	ErrInsufficientHierarchy = errors.New("your top role must be higher than the target's top role")
	ErrDurationTooLong       = errors.New("timeouts cannot be longer than 28 days")
	ErrInvalidTimeUnit       = errors.New("invalid time unit, use s, m, h, d or w")
	ErrInvalidTimeValue      = errors.New("invalid time value, use 1 to 5 digits per unit")
	ErrCaseNotFound          = errors.New("case not found")
	ErrNoCases               = errors.New("no cases recorded for this server")
	ErrModLogNotConfigured   = errors.New("mod log channel is not configured for this server")
	ErrInvalidPrefix         = errors.New("prefix must be between 1 and 10 characters")
)

// MissingRoleError names what the actor lacked. It matches ErrMissingPermissions.
type MissingRoleError struct {
	Tier   Tier
	RoleID string
}

func (e *MissingRoleError) Error() string {
	if e.RoleID == "" {
		return fmt.Sprintf("%s: %s tier", ErrMissingPermissions, e.Tier)
	}
	return fmt.Sprintf("%s: you need the <@&%s> role", ErrMissingPermissions, e.RoleID)
}

func (e *MissingRoleError) Is(target error) bool {
	return target == ErrMissingPermissions
}

// IsUserError reports whether err should be shown to the invoking user as is.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrRolesNotConfigured, ErrMissingPermissions, ErrInsufficientHierarchy,
		ErrDurationTooLong, ErrInvalidTimeUnit, ErrInvalidTimeValue,
		ErrCaseNotFound, ErrNoCases, ErrModLogNotConfigured, ErrInvalidPrefix,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
