package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workItemRepositoryImpl struct {
	db *database.DB
}

func NewWorkItemRepository(db *database.DB) workitem.WorkItemRepository {
	return &workItemRepositoryImpl{db: db}
}

const selectWorkItem = `
	SELECT id, name, price_per_weld, welds_per_item, total_quantity, quantity_made, status, created_at, updated_at
	FROM work_items
	WHERE id = $1
`

func (r *workItemRepositoryImpl) get(ctx context.Context, query, id string) (workitem.WorkItem, error) {
	q := GetQuerier(ctx, r.db)

	var item workitem.WorkItem
	err := q.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.PricePerWeld, &item.WeldsPerItem, &item.TotalQuantity,
		&item.QuantityMade, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workitem.WorkItem{}, workitem.ErrWorkItemNotFound
		}
		return workitem.WorkItem{}, err
	}
	return item, nil
}

// GetByID implements workitem.WorkItemRepository.
func (r *workItemRepositoryImpl) GetByID(ctx context.Context, id string) (workitem.WorkItem, error) {
	return r.get(ctx, selectWorkItem, id)
}

// GetByIDForUpdate implements workitem.WorkItemRepository.
func (r *workItemRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (workitem.WorkItem, error) {
	return r.get(ctx, selectWorkItem+" FOR UPDATE", id)
}

// AdjustQuantityMade implements workitem.WorkItemRepository.
func (r *workItemRepositoryImpl) AdjustQuantityMade(ctx context.Context, id string, delta int64) error {
	q := GetQuerier(ctx, r.db)

	// Releases always succeed; reservations only while headroom remains.
	query := `
		UPDATE work_items
		SET quantity_made = quantity_made + $1, updated_at = NOW()
		WHERE id = $2 AND ($1 <= 0 OR quantity_made + $1 <= total_quantity)
	`

	commandTag, err := q.Exec(ctx, query, delta, id)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		item, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return &workitem.QuotaExceededError{WorkItemID: id, Requested: delta, Remaining: item.Remaining()}
	}

	return nil
}
