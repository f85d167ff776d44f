package salary

import "errors"

var (
	ErrSalaryNotFound         = errors.New("monthly salary not found")
	ErrSalaryAlreadyExists    = errors.New("monthly salary already exists for this period")
	ErrInvalidStateTransition = errors.New("invalid salary state transition")
)
