package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) (*CatalogServiceImpl, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewCatalogService(
		memory.NewWorkTypeRepository(store),
		memory.NewWorkItemRepository(store),
		memory.NewWorkRecordRepository(store),
	)
	return svc, store
}

func TestCatalogService_WorkTypes(t *testing.T) {
	svc, store := newTestCatalog(t)
	ctx := context.Background()
	weld := store.PutWorkType(worktype.WorkType{Name: "Welding", Department: "production", CalculationType: worktype.CalculationTypeWeldCount})
	store.PutWorkType(worktype.WorkType{Name: "Cleaning", Department: "facility", CalculationType: worktype.CalculationTypeDaily, UnitPrice: 200000})

	got, err := svc.GetWorkType(ctx, weld.ID)
	require.NoError(t, err)
	assert.Equal(t, "weld_count", got.CalculationType)

	_, err = svc.GetWorkType(ctx, "missing")
	assert.ErrorIs(t, err, worktype.ErrWorkTypeNotFound)

	dept := "facility"
	list, err := svc.ListWorkTypes(ctx, &dept)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(200000), list[0].UnitPrice)
}

func TestCatalogService_GetRemainingQuota(t *testing.T) {
	svc, store := newTestCatalog(t)
	ctx := context.Background()
	item := store.PutWorkItem(workitem.WorkItem{Name: "Frame", PricePerWeld: 1000, WeldsPerItem: 4, TotalQuantity: 100, QuantityMade: 60})

	itemID := item.ID
	record, err := memory.NewWorkRecordRepository(store).Create(ctx, workrecord.WorkRecord{
		EmployeeID: "emp-1", WorkDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		WorkTypeID: "weld", WorkItemID: &itemID, Quantity: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	quota, err := svc.GetRemainingQuota(ctx, item.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(60), quota.QuantityMade)
	assert.Equal(t, int64(40), quota.Remaining)
	assert.Nil(t, quota.ExcludedRecordID)

	quota, err = svc.GetRemainingQuota(ctx, item.ID, &record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), quota.QuantityMade)
	assert.Equal(t, int64(100), quota.Remaining)
	assert.Equal(t, &record.ID, quota.ExcludedRecordID)

	missing := "missing"
	_, err = svc.GetRemainingQuota(ctx, item.ID, &missing)
	assert.ErrorIs(t, err, workrecord.ErrWorkRecordNotFound)

	_, err = svc.GetRemainingQuota(ctx, "missing", nil)
	assert.ErrorIs(t, err, workitem.ErrWorkItemNotFound)
}

func TestCatalogService_GetWorkItem(t *testing.T) {
	svc, store := newTestCatalog(t)
	item := store.PutWorkItem(workitem.WorkItem{Name: "Frame", TotalQuantity: 10, QuantityMade: 3})

	got, err := svc.GetWorkItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Remaining)
	assert.Equal(t, "new", got.Status)
}
