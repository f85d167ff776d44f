package worktype

import "time"

// CalculationType selects how a work record of this type is priced.
type CalculationType string

const (
	CalculationTypeWeldCount CalculationType = "weld_count"
	CalculationTypeHourly    CalculationType = "hourly"
	CalculationTypeDaily     CalculationType = "daily"
)

func (c CalculationType) IsValid() bool {
	switch c {
	case CalculationTypeWeldCount, CalculationTypeHourly, CalculationTypeDaily:
		return true
	}
	return false
}

// WorkType - catalog entry describing a kind of work and its pricing mode
type WorkType struct {
	ID              string
	Name            string
	Department      string
	CalculationType CalculationType
	UnitPrice       int64 // only meaningful for hourly and daily
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
