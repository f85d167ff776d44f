package catalog

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/service/payroll"
)

// CatalogServiceImpl serves the read side of work types and work items.
type CatalogServiceImpl struct {
	workTypeRepo   worktype.WorkTypeRepository
	workItemRepo   workitem.WorkItemRepository
	workRecordRepo workrecord.WorkRecordRepository
}

func NewCatalogService(
	workTypeRepo worktype.WorkTypeRepository,
	workItemRepo workitem.WorkItemRepository,
	workRecordRepo workrecord.WorkRecordRepository,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		workTypeRepo:   workTypeRepo,
		workItemRepo:   workItemRepo,
		workRecordRepo: workRecordRepo,
	}
}

var (
	_ worktype.WorkTypeService = (*CatalogServiceImpl)(nil)
	_ workitem.WorkItemService = (*CatalogServiceImpl)(nil)
)

func (s *CatalogServiceImpl) GetWorkType(ctx context.Context, id string) (worktype.WorkTypeResponse, error) {
	wt, err := s.workTypeRepo.GetByID(ctx, id)
	if err != nil {
		return worktype.WorkTypeResponse{}, err
	}
	return worktype.NewWorkTypeResponse(wt), nil
}

func (s *CatalogServiceImpl) ListWorkTypes(ctx context.Context, department *string) ([]worktype.WorkTypeResponse, error) {
	workTypes, err := s.workTypeRepo.List(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list work types: %w", err)
	}

	responses := make([]worktype.WorkTypeResponse, 0, len(workTypes))
	for _, wt := range workTypes {
		responses = append(responses, worktype.NewWorkTypeResponse(wt))
	}
	return responses, nil
}

func (s *CatalogServiceImpl) GetWorkItem(ctx context.Context, id string) (workitem.WorkItemResponse, error) {
	item, err := s.workItemRepo.GetByID(ctx, id)
	if err != nil {
		return workitem.WorkItemResponse{}, err
	}

	return workitem.WorkItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		PricePerWeld:  item.PricePerWeld,
		WeldsPerItem:  item.WeldsPerItem,
		TotalQuantity: item.TotalQuantity,
		QuantityMade:  item.QuantityMade,
		Remaining:     item.Remaining(),
		Status:        string(item.Status),
	}, nil
}

// GetRemainingQuota reports the item headroom. With excludeRecordID set the
// record's own contribution is left out, which is what an edit form needs.
func (s *CatalogServiceImpl) GetRemainingQuota(ctx context.Context, workItemID string, excludeRecordID *string) (workitem.RemainingQuotaResponse, error) {
	item, err := s.workItemRepo.GetByID(ctx, workItemID)
	if err != nil {
		return workitem.RemainingQuotaResponse{}, err
	}

	var excluded *workrecord.WorkRecord
	if excludeRecordID != nil {
		record, err := s.workRecordRepo.GetByID(ctx, *excludeRecordID)
		if err != nil {
			return workitem.RemainingQuotaResponse{}, err
		}
		excluded = &record
	}

	return workitem.RemainingQuotaResponse{
		WorkItemID:       item.ID,
		TotalQuantity:    item.TotalQuantity,
		QuantityMade:     payroll.QuantityMade(item, excluded),
		Remaining:        payroll.RemainingQuota(item, excluded),
		ExcludedRecordID: excludeRecordID,
	}, nil
}
