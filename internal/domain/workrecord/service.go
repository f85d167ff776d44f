package workrecord

import "context"

type WorkRecordService interface {
	CreateWorkRecord(ctx context.Context, req WorkRecordRequest) (WorkRecordResponse, error)
	UpdateWorkRecord(ctx context.Context, id string, req WorkRecordRequest) (WorkRecordResponse, error)
	DeleteWorkRecord(ctx context.Context, id string) error
	GetWorkRecord(ctx context.Context, id string) (WorkRecordResponse, error)
	ListWorkRecords(ctx context.Context, filter WorkRecordFilter) (ListWorkRecordResponse, error)
}
