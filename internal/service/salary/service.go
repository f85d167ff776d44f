package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
)

type SalaryServiceImpl struct {
	tx             database.Transactor
	workRecordRepo workrecord.WorkRecordRepository
	salaryRepo     salary.SalaryRepository
	metrics        *metrics.Metrics
	now            func() time.Time
}

type Option func(*SalaryServiceImpl)

// WithClock overrides the time source used for calculated_at and paid_at.
func WithClock(now func() time.Time) Option {
	return func(s *SalaryServiceImpl) {
		s.now = now
	}
}

func NewSalaryService(
	tx database.Transactor,
	workRecordRepo workrecord.WorkRecordRepository,
	salaryRepo salary.SalaryRepository,
	m *metrics.Metrics,
	opts ...Option,
) salary.SalaryService {
	s := &SalaryServiceImpl{
		tx:             tx,
		workRecordRepo: workRecordRepo,
		salaryRepo:     salaryRepo,
		metrics:        m,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// period identifies what a calculation rolls up.
type period struct {
	year  int
	month int
	start time.Time
	end   time.Time
}

func (s *SalaryServiceImpl) CalculateMonthlySalary(ctx context.Context, req salary.CalculateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	start, end := salary.MonthRange(req.PeriodYear, req.PeriodMonth)
	return s.calculate(ctx, req.EmployeeID, period{year: req.PeriodYear, month: req.PeriodMonth, start: start, end: end},
		req.Allowances, req.AdvancePayment)
}

func (s *SalaryServiceImpl) CalculateSalaryForRange(ctx context.Context, req salary.CalculateSalaryRangeRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	start, end := req.Range()
	return s.calculate(ctx, req.EmployeeID, period{year: start.Year(), month: int(start.Month()), start: start, end: end},
		req.Allowances, req.AdvancePayment)
}

// calculate upserts the draft salary for p from the employee's work records.
// Stored adjustments survive unless the caller passes new ones.
func (s *SalaryServiceImpl) calculate(ctx context.Context, employeeID string, p period, allowances, advancePayment *int64) (salary.SalaryResponse, error) {
	var result salary.MonthlySalary
	var event string

	run := func(ctx context.Context) error {
		summary, err := s.workRecordRepo.SummarizeEmployeePeriod(ctx, employeeID, p.start, p.end)
		if err != nil {
			return fmt.Errorf("failed to summarize work records: %w", err)
		}

		calculatedAt := s.now().UTC()
		existing, err := s.salaryRepo.GetByEmployeePeriodForUpdate(ctx, employeeID, p.start, p.end)
		switch {
		case errors.Is(err, salary.ErrSalaryNotFound):
			result, err = s.salaryRepo.Create(ctx, salary.MonthlySalary{
				EmployeeID:     employeeID,
				PeriodYear:     p.year,
				PeriodMonth:    p.month,
				PeriodStart:    p.start,
				PeriodEnd:      p.end,
				TotalWorkDays:  summary.TotalWorkDays,
				TotalAmount:    summary.TotalAmount,
				Allowances:     valueOr(allowances, 0),
				AdvancePayment: valueOr(advancePayment, 0),
				Status:         salary.SalaryStatusDraft,
				CalculatedAt:   calculatedAt,
			})
			event = "calculated"
			return err
		case err != nil:
			return err
		case !existing.IsDraft():
			return fmt.Errorf("%w: salary %s is already %s", salary.ErrInvalidStateTransition, existing.ID, existing.Status)
		}

		existing.TotalWorkDays = summary.TotalWorkDays
		existing.TotalAmount = summary.TotalAmount
		existing.Allowances = valueOr(allowances, existing.Allowances)
		existing.AdvancePayment = valueOr(advancePayment, existing.AdvancePayment)
		existing.CalculatedAt = calculatedAt
		result, err = s.salaryRepo.UpdateCalculation(ctx, existing)
		event = "recalculated"
		return err
	}

	err := s.tx.WithinTransaction(ctx, run)
	if errors.Is(err, salary.ErrSalaryAlreadyExists) {
		// A concurrent first calculation won the insert; redo it as a recalculation.
		err = s.tx.WithinTransaction(ctx, run)
	}
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	s.metrics.SalaryTransition(event)
	slog.InfoContext(ctx, "Calculated monthly salary",
		"salary_id", result.ID,
		"employee_id", employeeID,
		"period_start", p.start.Format(validator.DateLayout),
		"period_end", p.end.Format(validator.DateLayout),
		"total_amount", result.TotalAmount,
		"event", event,
	)

	return salary.NewSalaryResponse(result), nil
}

func (s *SalaryServiceImpl) UpdateAllowances(ctx context.Context, id string, amount int64) (salary.SalaryResponse, error) {
	return s.adjust(ctx, id, "allowances", &amount, nil)
}

func (s *SalaryServiceImpl) UpdateAdvancePayment(ctx context.Context, id string, amount int64) (salary.SalaryResponse, error) {
	return s.adjust(ctx, id, "advance_payment", nil, &amount)
}

func (s *SalaryServiceImpl) adjust(ctx context.Context, id, field string, allowances, advancePayment *int64) (salary.SalaryResponse, error) {
	req := salary.UpdateAmountRequest{Amount: allowances}
	if advancePayment != nil {
		req.Amount = advancePayment
	}
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	updated, err := s.salaryRepo.UpdateAdjustments(ctx, id, allowances, advancePayment)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	s.metrics.SalaryTransition("adjusted")
	slog.InfoContext(ctx, "Adjusted monthly salary", "salary_id", id, "field", field, "amount", *req.Amount)
	return salary.NewSalaryResponse(updated), nil
}

// PaySalary moves a draft salary to paid. Paid salaries are final.
func (s *SalaryServiceImpl) PaySalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	paid, err := s.salaryRepo.MarkPaid(ctx, id, s.now().UTC())
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	s.metrics.SalaryTransition("paid")
	slog.InfoContext(ctx, "Paid monthly salary",
		"salary_id", paid.ID,
		"employee_id", paid.EmployeeID,
		"payable_amount", paid.PayableAmount(),
	)
	return salary.NewSalaryResponse(paid), nil
}

func (s *SalaryServiceImpl) DeleteSalary(ctx context.Context, id string) error {
	if err := s.salaryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.SalaryTransition("deleted")
	slog.InfoContext(ctx, "Deleted monthly salary", "salary_id", id)
	return nil
}

func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	found, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.NewSalaryResponse(found), nil
}

func (s *SalaryServiceImpl) ListSalaries(ctx context.Context, filter salary.SalaryFilter) (salary.ListSalaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return salary.ListSalaryResponse{}, err
	}
	filter.Normalize()

	salaries, total, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return salary.ListSalaryResponse{}, err
	}

	data := make([]salary.SalaryResponse, 0, len(salaries))
	for _, item := range salaries {
		data = append(data, salary.NewSalaryResponse(item))
	}

	return salary.ListSalaryResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func valueOr(v *int64, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return *v
}
