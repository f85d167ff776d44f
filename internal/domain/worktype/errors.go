package worktype

import "errors"

var (
	ErrWorkTypeNotFound = errors.New("work type not found")
)
