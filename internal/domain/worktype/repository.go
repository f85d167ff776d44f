package worktype

import "context"

type WorkTypeRepository interface {
	GetByID(ctx context.Context, id string) (WorkType, error)
	List(ctx context.Context, department *string) ([]WorkType, error)
}
