package autoresponse

import "errors"

var (
	ErrDuplicateTrigger   = errors.New("an autoresponse with this trigger already exists")
	ErrNotFound           = errors.New("autoresponse not found")
	ErrSameGuildImport    = errors.New("cannot import autoresponses from the same server")
	ErrInvalidImportToken = errors.New("invalid import token")
	ErrInvalidTrigger     = errors.New("trigger and response must not be empty")
	ErrTriggerTooLong     = errors.New("trigger must be at most 100 characters")
)

// IsUserError reports whether err should be shown to the invoking user as is.
func IsUserError(err error) bool {
	for _, target := range []error{ErrDuplicateTrigger, ErrNotFound, ErrSameGuildImport, ErrInvalidImportToken, ErrInvalidTrigger, ErrTriggerTooLong} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
