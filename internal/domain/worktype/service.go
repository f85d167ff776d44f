package worktype

import "context"

type WorkTypeService interface {
	GetWorkType(ctx context.Context, id string) (WorkTypeResponse, error)
	ListWorkTypes(ctx context.Context, department *string) ([]WorkTypeResponse, error)
}
