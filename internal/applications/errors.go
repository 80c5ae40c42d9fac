package applications

import "errors"

var (
	ErrNotFound       = errors.New("application not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicate      = errors.New("already applied to this job offer")
	ErrNoCV           = errors.New("no cv on file")
	ErrJobInactive    = errors.New("job offer is not accepting applications")
	ErrDeadlinePassed = errors.New("job offer deadline has passed")
	ErrForbidden      = errors.New("not the owner of this application")
)
