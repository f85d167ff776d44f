package salary

import (
	"context"
	"time"
)

// SalaryRepository writes that change a salary only touch draft rows. When the
// row exists but is not draft they return ErrInvalidStateTransition.
type SalaryRepository interface {
	Create(ctx context.Context, s MonthlySalary) (MonthlySalary, error)
	GetByID(ctx context.Context, id string) (MonthlySalary, error)
	// GetByEmployeePeriodForUpdate locks the matching row; ErrSalaryNotFound when absent.
	GetByEmployeePeriodForUpdate(ctx context.Context, employeeID string, start, end time.Time) (MonthlySalary, error)
	UpdateCalculation(ctx context.Context, s MonthlySalary) (MonthlySalary, error)
	UpdateAdjustments(ctx context.Context, id string, allowances, advancePayment *int64) (MonthlySalary, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (MonthlySalary, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SalaryFilter) ([]MonthlySalary, int64, error)
}
