package salary

import "time"

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusDraft SalaryStatus = "draft"
	SalaryStatusPaid  SalaryStatus = "paid"
)

// MonthlySalary - per-employee roll-up of work record amounts for one period
type MonthlySalary struct {
	ID             string
	EmployeeID     string
	PeriodYear     int
	PeriodMonth    int
	PeriodStart    time.Time
	PeriodEnd      time.Time
	TotalWorkDays  int
	TotalAmount    int64
	Allowances     int64
	AdvancePayment int64
	Status         SalaryStatus
	Notes          *string
	CalculatedAt   time.Time
	PaidAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayableAmount is what remains to be paid out at settlement.
func (s MonthlySalary) PayableAmount() int64 {
	return s.TotalAmount + s.Allowances - s.AdvancePayment
}

func (s MonthlySalary) IsDraft() bool {
	return s.Status == SalaryStatusDraft
}

// MonthRange returns the first and last calendar day of year/month in UTC.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}
