package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
)

type workRecordRepository struct {
	store *Store
}

func NewWorkRecordRepository(store *Store) workrecord.WorkRecordRepository {
	return &workRecordRepository{store: store}
}

func (r *workRecordRepository) Create(ctx context.Context, record workrecord.WorkRecord) (workrecord.WorkRecord, error) {
	defer r.store.lock(ctx)()

	if record.ID == "" {
		record.ID = newID()
	}
	now := r.store.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.store.records[record.ID] = record
	return record, nil
}

func (r *workRecordRepository) GetByID(ctx context.Context, id string) (workrecord.WorkRecord, error) {
	defer r.store.lock(ctx)()

	record, ok := r.store.records[id]
	if !ok {
		return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
	}
	return record, nil
}

func (r *workRecordRepository) GetByIDForUpdate(ctx context.Context, id string) (workrecord.WorkRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *workRecordRepository) Update(ctx context.Context, record workrecord.WorkRecord) (workrecord.WorkRecord, error) {
	defer r.store.lock(ctx)()

	existing, ok := r.store.records[record.ID]
	if !ok {
		return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
	}
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.store.now()
	r.store.records[record.ID] = record
	return record, nil
}

func (r *workRecordRepository) Delete(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.records[id]; !ok {
		return workrecord.ErrWorkRecordNotFound
	}
	delete(r.store.records, id)
	return nil
}

func (r *workRecordRepository) List(ctx context.Context, filter workrecord.WorkRecordFilter) ([]workrecord.WorkRecord, int64, error) {
	defer r.store.lock(ctx)()

	var start, end time.Time
	if filter.StartDate != nil {
		start, _ = validator.IsValidDate(*filter.StartDate)
	}
	if filter.EndDate != nil {
		end, _ = validator.IsValidDate(*filter.EndDate)
	}

	matched := make([]workrecord.WorkRecord, 0)
	for _, rec := range r.store.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.WorkTypeID != nil && rec.WorkTypeID != *filter.WorkTypeID {
			continue
		}
		if filter.WorkItemID != nil && (rec.WorkItemID == nil || *rec.WorkItemID != *filter.WorkItemID) {
			continue
		}
		if filter.StartDate != nil && rec.WorkDate.Before(start) {
			continue
		}
		if filter.EndDate != nil && rec.WorkDate.After(end) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].WorkDate.Equal(matched[j].WorkDate) {
			return matched[i].WorkDate.After(matched[j].WorkDate)
		}
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	from, to := paginate(len(matched), filter.Page, filter.Limit)
	return matched[from:to], int64(len(matched)), nil
}

func (r *workRecordRepository) SummarizeEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (workrecord.PeriodSummary, error) {
	defer r.store.lock(ctx)()

	summary := workrecord.PeriodSummary{EmployeeID: employeeID}
	days := make(map[string]struct{})
	for _, rec := range r.store.records {
		if rec.EmployeeID != employeeID || rec.WorkDate.Before(start) || rec.WorkDate.After(end) {
			continue
		}
		summary.RecordCount++
		summary.TotalAmount += rec.TotalAmount
		days[rec.WorkDate.Format(validator.DateLayout)] = struct{}{}
	}
	summary.TotalWorkDays = len(days)
	return summary, nil
}
