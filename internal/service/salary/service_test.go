package salary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-core-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T) (salary.SalaryService, workrecord.WorkRecordRepository, *clock) {
	t.Helper()
	store := memory.NewStore()
	records := memory.NewWorkRecordRepository(store)
	c := &clock{t: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewSalaryService(store, records, memory.NewSalaryRepository(store), nil, WithClock(c.now))
	return svc, records, c
}

func addRecord(t *testing.T, repo workrecord.WorkRecordRepository, employeeID string, date time.Time, total int64) {
	t.Helper()
	_, err := repo.Create(context.Background(), workrecord.WorkRecord{
		EmployeeID:  employeeID,
		WorkDate:    date,
		WorkTypeID:  "wt",
		Quantity:    decimal.NewFromInt(1),
		TotalAmount: total,
	})
	require.NoError(t, err)
}

func may(d int) time.Time { return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC) }

func TestCalculateMonthlySalary_Idempotent(t *testing.T) {
	svc, records, c := newTestService(t)
	ctx := context.Background()

	addRecord(t, records, "emp-1", may(2), 300000)
	addRecord(t, records, "emp-1", may(2), 150000)
	addRecord(t, records, "emp-1", may(31), 550000)
	addRecord(t, records, "emp-1", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 999999)
	addRecord(t, records, "emp-2", may(3), 777777)

	req := salary.CalculateSalaryRequest{EmployeeID: "emp-1", PeriodYear: 2024, PeriodMonth: 5}
	first, err := svc.CalculateMonthlySalary(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), first.TotalAmount)
	assert.Equal(t, 2, first.TotalWorkDays)
	assert.Equal(t, "2024-05-01", first.PeriodStart)
	assert.Equal(t, "2024-05-31", first.PeriodEnd)
	assert.Equal(t, "draft", first.Status)

	c.advance(time.Hour)
	second, err := svc.CalculateMonthlySalary(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TotalAmount, second.TotalAmount)
	assert.NotEqual(t, first.CalculatedAt, second.CalculatedAt)
	assert.Equal(t, "2024-06-01T10:00:00Z", second.CalculatedAt)
}

func TestCalculateMonthlySalary_PreservesAdjustments(t *testing.T) {
	svc, records, _ := newTestService(t)
	ctx := context.Background()
	addRecord(t, records, "emp-1", may(2), 100000)

	allowances := int64(20000)
	first, err := svc.CalculateMonthlySalary(ctx, salary.CalculateSalaryRequest{
		EmployeeID: "emp-1", PeriodYear: 2024, PeriodMonth: 5, Allowances: &allowances,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120000), first.PayableAmount)

	_, err = svc.UpdateAdvancePayment(ctx, first.ID, 50000)
	require.NoError(t, err)

	addRecord(t, records, "emp-1", may(3), 100000)
	second, err := svc.CalculateMonthlySalary(ctx, salary.CalculateSalaryRequest{EmployeeID: "emp-1", PeriodYear: 2024, PeriodMonth: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(200000), second.TotalAmount)
	assert.Equal(t, int64(20000), second.Allowances)
	assert.Equal(t, int64(50000), second.AdvancePayment)
	assert.Equal(t, int64(170000), second.PayableAmount)
}

func TestSalaryLifecycle(t *testing.T) {
	svc, records, _ := newTestService(t)
	ctx := context.Background()
	addRecord(t, records, "emp-1", may(2), 100000)

	req := salary.CalculateSalaryRequest{EmployeeID: "emp-1", PeriodYear: 2024, PeriodMonth: 5}
	draft, err := svc.CalculateMonthlySalary(ctx, req)
	require.NoError(t, err)

	_, err = svc.UpdateAllowances(ctx, draft.ID, 15000)
	require.NoError(t, err)

	paid, err := svc.PaySalary(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, int64(115000), paid.PayableAmount)

	_, err = svc.CalculateMonthlySalary(ctx, req)
	assert.ErrorIs(t, err, salary.ErrInvalidStateTransition)
	_, err = svc.PaySalary(ctx, draft.ID)
	assert.ErrorIs(t, err, salary.ErrInvalidStateTransition)
	_, err = svc.UpdateAllowances(ctx, draft.ID, 1)
	assert.ErrorIs(t, err, salary.ErrInvalidStateTransition)
	assert.ErrorIs(t, svc.DeleteSalary(ctx, draft.ID), salary.ErrInvalidStateTransition)

	got, err := svc.GetSalary(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
}

func TestDeleteSalary_Draft(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	draft, err := svc.CalculateMonthlySalary(ctx, salary.CalculateSalaryRequest{EmployeeID: "emp-1", PeriodYear: 2024, PeriodMonth: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), draft.TotalAmount)

	require.NoError(t, svc.DeleteSalary(ctx, draft.ID))
	_, err = svc.GetSalary(ctx, draft.ID)
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}

func TestCalculateSalaryForRange(t *testing.T) {
	svc, records, _ := newTestService(t)
	ctx := context.Background()
	addRecord(t, records, "emp-1", may(10), 100000)
	addRecord(t, records, "emp-1", may(20), 100000)

	resp, err := svc.CalculateSalaryForRange(ctx, salary.CalculateSalaryRangeRequest{
		EmployeeID: "emp-1", StartDate: "2024-05-01", EndDate: "2024-05-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), resp.TotalAmount)
	assert.Equal(t, 5, resp.PeriodMonth)
	assert.Equal(t, "2024-05-15", resp.PeriodEnd)

	_, err = svc.CalculateSalaryForRange(ctx, salary.CalculateSalaryRangeRequest{
		EmployeeID: "emp-1", StartDate: "2024-05-15", EndDate: "2024-05-01",
	})
	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Contains(t, validationErrs.ToMap(), "end_date")
}

func TestCalculateMonthlySalary_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	negative := int64(-1)
	_, err := svc.CalculateMonthlySalary(context.Background(), salary.CalculateSalaryRequest{
		PeriodYear: 2024, PeriodMonth: 13, Allowances: &negative,
	})
	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	fields := validationErrs.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "period_month")
	assert.Contains(t, fields, "allowances")

	_, err = svc.UpdateAllowances(context.Background(), "any", -5)
	assert.True(t, errors.As(err, &validationErrs))
}

func TestListSalaries(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, month := range []int{3, 4, 5} {
		_, err := svc.CalculateMonthlySalary(ctx, salary.CalculateSalaryRequest{EmployeeID: "emp-1", PeriodYear: 2024, PeriodMonth: month})
		require.NoError(t, err)
	}

	resp, err := svc.ListSalaries(ctx, salary.SalaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, 5, resp.Data[0].PeriodMonth)
	assert.Equal(t, 20, resp.Limit)

	status := "archived"
	_, err = svc.ListSalaries(ctx, salary.SalaryFilter{Status: &status})
	var validationErrs validator.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
}
