package workrecord

import "errors"

var (
	ErrWorkRecordNotFound         = errors.New("work record not found")
	ErrUnsupportedCalculationMode = errors.New("overtime is not supported for this calculation mode")
)
