package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
)

type salaryRepository struct {
	store *Store
}

func NewSalaryRepository(store *Store) salary.SalaryRepository {
	return &salaryRepository{store: store}
}

func (r *salaryRepository) Create(ctx context.Context, s salary.MonthlySalary) (salary.MonthlySalary, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.salaries {
		if existing.EmployeeID == s.EmployeeID && existing.PeriodStart.Equal(s.PeriodStart) && existing.PeriodEnd.Equal(s.PeriodEnd) {
			return salary.MonthlySalary{}, salary.ErrSalaryAlreadyExists
		}
	}

	if s.ID == "" {
		s.ID = newID()
	}
	now := r.store.now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.store.salaries[s.ID] = s
	return s, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.MonthlySalary, error) {
	defer r.store.lock(ctx)()

	s, ok := r.store.salaries[id]
	if !ok {
		return salary.MonthlySalary{}, salary.ErrSalaryNotFound
	}
	return s, nil
}

func (r *salaryRepository) GetByEmployeePeriodForUpdate(ctx context.Context, employeeID string, start, end time.Time) (salary.MonthlySalary, error) {
	defer r.store.lock(ctx)()

	for _, s := range r.store.salaries {
		if s.EmployeeID == employeeID && s.PeriodStart.Equal(start) && s.PeriodEnd.Equal(end) {
			return s, nil
		}
	}
	return salary.MonthlySalary{}, salary.ErrSalaryNotFound
}

// draft fetches id and fails unless it is still a draft. Caller holds the lock.
func (r *salaryRepository) draft(id string) (salary.MonthlySalary, error) {
	s, ok := r.store.salaries[id]
	if !ok {
		return salary.MonthlySalary{}, salary.ErrSalaryNotFound
	}
	if !s.IsDraft() {
		return salary.MonthlySalary{}, fmt.Errorf("%w: salary %s is %s", salary.ErrInvalidStateTransition, id, s.Status)
	}
	return s, nil
}

func (r *salaryRepository) UpdateCalculation(ctx context.Context, s salary.MonthlySalary) (salary.MonthlySalary, error) {
	defer r.store.lock(ctx)()

	existing, err := r.draft(s.ID)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	existing.TotalWorkDays = s.TotalWorkDays
	existing.TotalAmount = s.TotalAmount
	existing.Allowances = s.Allowances
	existing.AdvancePayment = s.AdvancePayment
	existing.CalculatedAt = s.CalculatedAt
	existing.UpdatedAt = r.store.now()
	r.store.salaries[s.ID] = existing
	return existing, nil
}

func (r *salaryRepository) UpdateAdjustments(ctx context.Context, id string, allowances, advancePayment *int64) (salary.MonthlySalary, error) {
	defer r.store.lock(ctx)()

	existing, err := r.draft(id)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	if allowances != nil {
		existing.Allowances = *allowances
	}
	if advancePayment != nil {
		existing.AdvancePayment = *advancePayment
	}
	existing.UpdatedAt = r.store.now()
	r.store.salaries[id] = existing
	return existing, nil
}

func (r *salaryRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (salary.MonthlySalary, error) {
	defer r.store.lock(ctx)()

	existing, err := r.draft(id)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	existing.Status = salary.SalaryStatusPaid
	existing.PaidAt = &paidAt
	existing.UpdatedAt = r.store.now()
	r.store.salaries[id] = existing
	return existing, nil
}

func (r *salaryRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()

	if _, err := r.draft(id); err != nil {
		return err
	}
	delete(r.store.salaries, id)
	return nil
}

func (r *salaryRepository) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.MonthlySalary, int64, error) {
	defer r.store.lock(ctx)()

	matched := make([]salary.MonthlySalary, 0)
	for _, s := range r.store.salaries {
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.PeriodYear != nil && s.PeriodYear != *filter.PeriodYear {
			continue
		}
		if filter.PeriodMonth != nil && s.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.Status != nil && string(s.Status) != *filter.Status {
			continue
		}
		matched = append(matched, s)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PeriodStart.Equal(matched[j].PeriodStart) {
			return matched[i].PeriodStart.After(matched[j].PeriodStart)
		}
		return matched[i].EmployeeID < matched[j].EmployeeID
	})

	from, to := paginate(len(matched), filter.Page, filter.Limit)
	return matched[from:to], int64(len(matched)), nil
}
