package workrecord

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkRecord - one employee's work entry for one day and work type
type WorkRecord struct {
	ID               string
	EmployeeID       string
	WorkDate         time.Time
	WorkTypeID       string
	WorkItemID       *string // set iff the work type is weld_count
	Quantity         decimal.Decimal
	UnitPrice        int64 // price actually applied: item price_per_weld or work type unit price
	IsOvertime       bool
	OvertimeQuantity *int64           // weld_count only
	OvertimeHours    *decimal.Decimal // hourly only
	BaseAmount       int64
	OvertimeAmount   int64
	TotalAmount      int64
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ItemQuantity is the record's contribution to its work item quota.
func (r WorkRecord) ItemQuantity() int64 {
	if r.WorkItemID == nil {
		return 0
	}
	return r.Quantity.IntPart()
}

// PeriodSummary - aggregate of one employee's records over a date range
type PeriodSummary struct {
	EmployeeID    string
	RecordCount   int
	TotalWorkDays int // distinct work dates
	TotalAmount   int64
}
