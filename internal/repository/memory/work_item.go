package memory

import (
	"context"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
)

type workItemRepository struct {
	store *Store
}

func NewWorkItemRepository(store *Store) workitem.WorkItemRepository {
	return &workItemRepository{store: store}
}

func (r *workItemRepository) GetByID(ctx context.Context, id string) (workitem.WorkItem, error) {
	defer r.store.lock(ctx)()

	item, ok := r.store.workItems[id]
	if !ok {
		return workitem.WorkItem{}, workitem.ErrWorkItemNotFound
	}
	return item, nil
}

// GetByIDForUpdate relies on the transaction mutex for exclusivity.
func (r *workItemRepository) GetByIDForUpdate(ctx context.Context, id string) (workitem.WorkItem, error) {
	return r.GetByID(ctx, id)
}

func (r *workItemRepository) AdjustQuantityMade(ctx context.Context, id string, delta int64) error {
	defer r.store.lock(ctx)()

	item, ok := r.store.workItems[id]
	if !ok {
		return workitem.ErrWorkItemNotFound
	}
	if delta > 0 && item.QuantityMade+delta > item.TotalQuantity {
		return &workitem.QuotaExceededError{WorkItemID: id, Requested: delta, Remaining: item.Remaining()}
	}

	item.QuantityMade += delta
	item.UpdatedAt = r.store.now()
	r.store.workItems[id] = item
	return nil
}
