package workitem

import "context"

type WorkItemService interface {
	GetWorkItem(ctx context.Context, id string) (WorkItemResponse, error)
	GetRemainingQuota(ctx context.Context, workItemID string, excludeRecordID *string) (RemainingQuotaResponse, error)
}
