package workrecord

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-core-go/internal/service/payroll"
)

type WorkRecordServiceImpl struct {
	tx             database.Transactor
	workTypeRepo   worktype.WorkTypeRepository
	workItemRepo   workitem.WorkItemRepository
	overtimeRepo   overtime.OvertimeRepository
	workRecordRepo workrecord.WorkRecordRepository
	calculator     *payroll.LineCalculator
	metrics        *metrics.Metrics
}

func NewWorkRecordService(
	tx database.Transactor,
	workTypeRepo worktype.WorkTypeRepository,
	workItemRepo workitem.WorkItemRepository,
	overtimeRepo overtime.OvertimeRepository,
	workRecordRepo workrecord.WorkRecordRepository,
	calculator *payroll.LineCalculator,
	m *metrics.Metrics,
) workrecord.WorkRecordService {
	return &WorkRecordServiceImpl{
		tx:             tx,
		workTypeRepo:   workTypeRepo,
		workItemRepo:   workItemRepo,
		overtimeRepo:   overtimeRepo,
		workRecordRepo: workRecordRepo,
		calculator:     calculator,
		metrics:        m,
	}
}

// CreateWorkRecord prices the request and reserves its quantity on the work
// item in one transaction.
func (s *WorkRecordServiceImpl) CreateWorkRecord(ctx context.Context, req workrecord.WorkRecordRequest) (workrecord.WorkRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return workrecord.WorkRecordResponse{}, err
	}

	var created workrecord.WorkRecord
	var ct worktype.CalculationType
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, calculationType, err := s.price(ctx, req, nil)
		if err != nil {
			return err
		}
		ct = calculationType

		if qty := record.ItemQuantity(); qty > 0 {
			if err := s.workItemRepo.AdjustQuantityMade(ctx, *record.WorkItemID, qty); err != nil {
				return err
			}
		}

		created, err = s.workRecordRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		return workrecord.WorkRecordResponse{}, s.rejected(ctx, "create", err)
	}

	s.metrics.WorkRecordWritten("create")
	s.metrics.ObserveLineAmount(string(ct), created.TotalAmount)
	slog.InfoContext(ctx, "Created work record",
		"work_record_id", created.ID,
		"employee_id", created.EmployeeID,
		"calculation_type", ct,
		"total_amount", created.TotalAmount,
	)

	return workrecord.NewWorkRecordResponse(created), nil
}

// UpdateWorkRecord replaces the record with req. The record's previous
// quantity does not count against the quota it is edited under.
func (s *WorkRecordServiceImpl) UpdateWorkRecord(ctx context.Context, id string, req workrecord.WorkRecordRequest) (workrecord.WorkRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return workrecord.WorkRecordResponse{}, err
	}

	var updated workrecord.WorkRecord
	var ct worktype.CalculationType
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.workRecordRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := s.lockItems(ctx, existing.WorkItemID, req.WorkItemID); err != nil {
			return err
		}

		record, calculationType, err := s.price(ctx, req, &existing)
		if err != nil {
			return err
		}
		ct = calculationType
		record.ID = existing.ID

		if err := s.moveQuota(ctx, existing, record); err != nil {
			return err
		}

		updated, err = s.workRecordRepo.Update(ctx, record)
		return err
	})
	if err != nil {
		return workrecord.WorkRecordResponse{}, s.rejected(ctx, "update", err)
	}

	s.metrics.WorkRecordWritten("update")
	s.metrics.ObserveLineAmount(string(ct), updated.TotalAmount)
	slog.InfoContext(ctx, "Updated work record",
		"work_record_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"total_amount", updated.TotalAmount,
	)

	return workrecord.NewWorkRecordResponse(updated), nil
}

// DeleteWorkRecord removes the record and gives its quantity back to the work item.
func (s *WorkRecordServiceImpl) DeleteWorkRecord(ctx context.Context, id string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.workRecordRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if qty := existing.ItemQuantity(); qty > 0 {
			if err := s.workItemRepo.AdjustQuantityMade(ctx, *existing.WorkItemID, -qty); err != nil {
				return err
			}
		}

		return s.workRecordRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.metrics.WorkRecordWritten("delete")
	slog.InfoContext(ctx, "Deleted work record", "work_record_id", id)
	return nil
}

func (s *WorkRecordServiceImpl) GetWorkRecord(ctx context.Context, id string) (workrecord.WorkRecordResponse, error) {
	record, err := s.workRecordRepo.GetByID(ctx, id)
	if err != nil {
		return workrecord.WorkRecordResponse{}, err
	}
	return workrecord.NewWorkRecordResponse(record), nil
}

func (s *WorkRecordServiceImpl) ListWorkRecords(ctx context.Context, filter workrecord.WorkRecordFilter) (workrecord.ListWorkRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return workrecord.ListWorkRecordResponse{}, err
	}
	filter.Normalize()

	records, total, err := s.workRecordRepo.List(ctx, filter)
	if err != nil {
		return workrecord.ListWorkRecordResponse{}, err
	}

	data := make([]workrecord.WorkRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, workrecord.NewWorkRecordResponse(record))
	}

	return workrecord.ListWorkRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// price resolves the work type, item and overtime config for req and runs the
// line calculator. existing is the record being edited, nil on create.
func (s *WorkRecordServiceImpl) price(ctx context.Context, req workrecord.WorkRecordRequest, existing *workrecord.WorkRecord) (workrecord.WorkRecord, worktype.CalculationType, error) {
	wt, err := s.workTypeRepo.GetByID(ctx, req.WorkTypeID)
	if err != nil {
		return workrecord.WorkRecord{}, "", err
	}

	if err := payroll.ValidateWorkItemRef(wt.CalculationType, req.WorkItemID); err != nil {
		return workrecord.WorkRecord{}, "", err
	}

	var item *workitem.WorkItem
	var remaining *int64
	if req.WorkItemID != nil {
		locked, err := s.workItemRepo.GetByIDForUpdate(ctx, *req.WorkItemID)
		if err != nil {
			return workrecord.WorkRecord{}, "", err
		}
		item = &locked
		headroom := payroll.RemainingQuota(locked, existing)
		remaining = &headroom
	}

	pricing, err := payroll.PricingFor(wt, item, req.UnitPrice)
	if err != nil {
		return workrecord.WorkRecord{}, "", err
	}

	cfg, err := s.overtimeRepo.GetByWorkTypeID(ctx, wt.ID)
	if err != nil {
		return workrecord.WorkRecord{}, "", err
	}

	in := payroll.LineInput{
		Pricing:          pricing,
		Overtime:         cfg,
		Quantity:         req.Quantity,
		IsOvertime:       req.IsOvertime,
		OvertimeQuantity: req.OvertimeQuantity,
		OvertimeHours:    req.OvertimeHours,
		Remaining:        remaining,
	}.Normalized()

	amount, err := s.calculator.Compute(in)
	if err != nil {
		return workrecord.WorkRecord{}, "", err
	}

	return workrecord.WorkRecord{
		EmployeeID:       req.EmployeeID,
		WorkDate:         req.ParsedWorkDate(),
		WorkTypeID:       wt.ID,
		WorkItemID:       req.WorkItemID,
		Quantity:         req.Quantity,
		UnitPrice:        amount.UnitPrice,
		IsOvertime:       req.IsOvertime,
		OvertimeQuantity: in.OvertimeQuantity,
		OvertimeHours:    in.OvertimeHours,
		BaseAmount:       amount.BaseAmount,
		OvertimeAmount:   amount.OvertimeAmount,
		TotalAmount:      amount.TotalAmount,
		Notes:            req.Notes,
	}, wt.CalculationType, nil
}

// lockItems takes the row locks for every item an edit touches in a stable
// order so two edits moving quantity between the same items cannot deadlock.
func (s *WorkRecordServiceImpl) lockItems(ctx context.Context, ids ...*string) error {
	seen := make(map[string]struct{}, len(ids))
	ordered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		ordered = append(ordered, *id)
	}
	sort.Strings(ordered)

	for _, id := range ordered {
		if _, err := s.workItemRepo.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// moveQuota applies the counter change between the stored and the new version of a record.
func (s *WorkRecordServiceImpl) moveQuota(ctx context.Context, existing, record workrecord.WorkRecord) error {
	oldItem, newItem := itemID(existing), itemID(record)

	if oldItem == newItem {
		delta := record.ItemQuantity() - existing.ItemQuantity()
		if oldItem == "" || delta == 0 {
			return nil
		}
		return s.workItemRepo.AdjustQuantityMade(ctx, oldItem, delta)
	}

	if qty := existing.ItemQuantity(); oldItem != "" && qty > 0 {
		if err := s.workItemRepo.AdjustQuantityMade(ctx, oldItem, -qty); err != nil {
			return err
		}
	}
	if qty := record.ItemQuantity(); newItem != "" && qty > 0 {
		return s.workItemRepo.AdjustQuantityMade(ctx, newItem, qty)
	}
	return nil
}

// rejected counts quota rejections before handing err back.
func (s *WorkRecordServiceImpl) rejected(ctx context.Context, operation string, err error) error {
	var quotaErr *workitem.QuotaExceededError
	if errors.As(err, &quotaErr) {
		s.metrics.QuotaRejected()
		slog.InfoContext(ctx, "Rejected work record over quota",
			"operation", operation,
			"work_item_id", quotaErr.WorkItemID,
			"requested", quotaErr.Requested,
			"remaining", quotaErr.Remaining,
		)
	}
	return err
}

func itemID(r workrecord.WorkRecord) string {
	if r.WorkItemID == nil {
		return ""
	}
	return *r.WorkItemID
}
