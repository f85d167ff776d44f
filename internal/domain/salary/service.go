package salary

import "context"

type SalaryService interface {
	CalculateMonthlySalary(ctx context.Context, req CalculateSalaryRequest) (SalaryResponse, error)
	CalculateSalaryForRange(ctx context.Context, req CalculateSalaryRangeRequest) (SalaryResponse, error)
	UpdateAllowances(ctx context.Context, id string, amount int64) (SalaryResponse, error)
	UpdateAdvancePayment(ctx context.Context, id string, amount int64) (SalaryResponse, error)
	PaySalary(ctx context.Context, id string) (SalaryResponse, error)
	DeleteSalary(ctx context.Context, id string) error
	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) (ListSalaryResponse, error)
}
