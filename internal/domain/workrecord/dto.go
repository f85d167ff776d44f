package workrecord

import (
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// WorkRecordRequest is the full payload for both create and update.
// Mode-dependent rules (integer quantities, overtime fields, quota) are
// checked by the line calculator once the work type is known.
type WorkRecordRequest struct {
	EmployeeID       string           `json:"employee_id"`
	WorkDate         string           `json:"work_date"`
	WorkTypeID       string           `json:"work_type_id"`
	WorkItemID       *string          `json:"work_item_id,omitempty"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        *int64           `json:"unit_price,omitempty"` // hourly/daily override; ignored for weld_count
	IsOvertime       bool             `json:"is_overtime"`
	OvertimeQuantity *int64           `json:"overtime_quantity,omitempty"`
	OvertimeHours    *decimal.Decimal `json:"overtime_hours,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

func (r *WorkRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	if validator.IsEmpty(r.WorkDate) {
		errs.Add("work_date", "is required")
	} else if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs.Add("work_date", "must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.WorkTypeID) {
		errs.Add("work_type_id", "is required")
	}
	if r.WorkItemID != nil && validator.IsEmpty(*r.WorkItemID) {
		errs.Add("work_item_id", "must not be blank")
	}
	if r.UnitPrice != nil && *r.UnitPrice < 0 {
		errs.Add("unit_price", "must be non-negative")
	}

	return errs.Err()
}

// ParsedWorkDate assumes Validate has passed.
func (r *WorkRecordRequest) ParsedWorkDate() time.Time {
	date, _ := validator.IsValidDate(r.WorkDate)
	return date
}

type WorkRecordResponse struct {
	ID               string           `json:"id"`
	EmployeeID       string           `json:"employee_id"`
	WorkDate         string           `json:"work_date"`
	WorkTypeID       string           `json:"work_type_id"`
	WorkItemID       *string          `json:"work_item_id,omitempty"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        int64            `json:"unit_price"`
	IsOvertime       bool             `json:"is_overtime"`
	OvertimeQuantity *int64           `json:"overtime_quantity,omitempty"`
	OvertimeHours    *decimal.Decimal `json:"overtime_hours,omitempty"`
	BaseAmount       int64            `json:"base_amount"`
	OvertimeAmount   int64            `json:"overtime_amount"`
	TotalAmount      int64            `json:"total_amount"`
	Notes            *string          `json:"notes,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

func NewWorkRecordResponse(r WorkRecord) WorkRecordResponse {
	return WorkRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		WorkDate:         r.WorkDate.Format(validator.DateLayout),
		WorkTypeID:       r.WorkTypeID,
		WorkItemID:       r.WorkItemID,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		IsOvertime:       r.IsOvertime,
		OvertimeQuantity: r.OvertimeQuantity,
		OvertimeHours:    r.OvertimeHours,
		BaseAmount:       r.BaseAmount,
		OvertimeAmount:   r.OvertimeAmount,
		TotalAmount:      r.TotalAmount,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.Format(time.RFC3339),
	}
}

type WorkRecordFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	WorkTypeID *string `json:"work_type_id,omitempty"`
	WorkItemID *string `json:"work_item_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *WorkRecordFilter) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var hasStart, hasEnd bool
	if f.StartDate != nil {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs.Add("start_date", "must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs.Add("end_date", "must be in YYYY-MM-DD format")
		}
	}
	if hasStart && hasEnd && end.Before(start) {
		errs.Add("end_date", "must not be before start_date")
	}

	return errs.Err()
}

// Normalize applies the default pagination used across list endpoints.
func (f *WorkRecordFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Page > validator.MaxPage {
		f.Page = validator.MaxPage
	}
}

type ListWorkRecordResponse struct {
	Data       []WorkRecordResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
