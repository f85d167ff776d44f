package workitem

import "context"

type WorkItemRepository interface {
	GetByID(ctx context.Context, id string) (WorkItem, error)
	// GetByIDForUpdate locks the item row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (WorkItem, error)
	// AdjustQuantityMade moves the counter by delta. It returns ErrQuotaExceeded
	// when a positive delta would push quantity_made above total_quantity.
	AdjustQuantityMade(ctx context.Context, id string, delta int64) error
}
