package builder

import "errors"

var (
	ErrInvalidSystem       = errors.New("invalid system declaration")
	ErrPriorityOutOfRange  = errors.New("priority is out of range for the target")
	ErrUndeclaredResource  = errors.New("job claims an undeclared resource")
	ErrDuplicateVector     = errors.New("interrupt vector is bound to more than one job")
	ErrUnexpectedOutput    = errors.New("unexpected output path provided")
	ErrMissingTarget       = errors.New("no target chip or series specified")
	ErrMissingSystemSource = errors.New("no system declaration specified")
)
