package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
)

type CalculateSalaryRequest struct {
	EmployeeID     string `json:"employee_id"`
	PeriodYear     int    `json:"period_year"`
	PeriodMonth    int    `json:"period_month"`
	Allowances     *int64 `json:"allowances,omitempty"`      // nil keeps the stored value
	AdvancePayment *int64 `json:"advance_payment,omitempty"` // nil keeps the stored value
}

func (r *CalculateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs.Add("period_month", "must be between 1 and 12")
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 9999 {
		errs.Add("period_year", "must be between 2000 and 9999")
	}
	validateAdjustments(&errs, r.Allowances, r.AdvancePayment)

	return errs.Err()
}

// CalculateSalaryRangeRequest covers periods that do not align with a calendar month.
type CalculateSalaryRangeRequest struct {
	EmployeeID     string `json:"employee_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Allowances     *int64 `json:"allowances,omitempty"`
	AdvancePayment *int64 `json:"advance_payment,omitempty"`
}

func (r *CalculateSalaryRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("start_date", "must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("end_date", "must be in YYYY-MM-DD format")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", "must not be before start_date")
	}
	validateAdjustments(&errs, r.Allowances, r.AdvancePayment)

	return errs.Err()
}

// Range assumes Validate has passed.
func (r *CalculateSalaryRangeRequest) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

func validateAdjustments(errs *validator.ValidationErrors, allowances, advancePayment *int64) {
	if allowances != nil && *allowances < 0 {
		errs.Add("allowances", "must be non-negative")
	}
	if advancePayment != nil && *advancePayment < 0 {
		errs.Add("advance_payment", "must be non-negative")
	}
}

type UpdateAmountRequest struct {
	Amount *int64 `json:"amount"`
}

func (r *UpdateAmountRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount == nil {
		errs.Add("amount", "is required")
	} else if *r.Amount < 0 {
		errs.Add("amount", "must be non-negative")
	}

	return errs.Err()
}

type SalaryResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	PeriodYear     int     `json:"period_year"`
	PeriodMonth    int     `json:"period_month"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	TotalWorkDays  int     `json:"total_work_days"`
	TotalAmount    int64   `json:"total_amount"`
	Allowances     int64   `json:"allowances"`
	AdvancePayment int64   `json:"advance_payment"`
	PayableAmount  int64   `json:"payable_amount"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	CalculatedAt   string  `json:"calculated_at"`
	PaidAt         *string `json:"paid_at,omitempty"`
}

func NewSalaryResponse(s MonthlySalary) SalaryResponse {
	var paidAtStr *string
	if s.PaidAt != nil {
		str := s.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	return SalaryResponse{
		ID:             s.ID,
		EmployeeID:     s.EmployeeID,
		PeriodYear:     s.PeriodYear,
		PeriodMonth:    s.PeriodMonth,
		PeriodStart:    s.PeriodStart.Format(validator.DateLayout),
		PeriodEnd:      s.PeriodEnd.Format(validator.DateLayout),
		TotalWorkDays:  s.TotalWorkDays,
		TotalAmount:    s.TotalAmount,
		Allowances:     s.Allowances,
		AdvancePayment: s.AdvancePayment,
		PayableAmount:  s.PayableAmount(),
		Status:         string(s.Status),
		Notes:          s.Notes,
		CalculatedAt:   s.CalculatedAt.Format(time.RFC3339),
		PaidAt:         paidAtStr,
	}
}

type SalaryFilter struct {
	PeriodYear  *int    `json:"period_year,omitempty"`
	PeriodMonth *int    `json:"period_month,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

func (f *SalaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.PeriodMonth != nil && (*f.PeriodMonth < 1 || *f.PeriodMonth > 12) {
		errs.Add("period_month", "must be between 1 and 12")
	}
	if f.Status != nil {
		switch SalaryStatus(*f.Status) {
		case SalaryStatusDraft, SalaryStatusPaid:
		default:
			errs.Add("status", "must be 'draft' or 'paid'")
		}
	}

	return errs.Err()
}

func (f *SalaryFilter) Normalize() {
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

type ListSalaryResponse struct {
	Data       []SalaryResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
