package workrecord

import (
	"context"
	"time"
)

type WorkRecordRepository interface {
	Create(ctx context.Context, record WorkRecord) (WorkRecord, error)
	GetByID(ctx context.Context, id string) (WorkRecord, error)
	// GetByIDForUpdate locks the record row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (WorkRecord, error)
	Update(ctx context.Context, record WorkRecord) (WorkRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter WorkRecordFilter) ([]WorkRecord, int64, error)

	// Aggregations
	SummarizeEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (PeriodSummary, error)
}
