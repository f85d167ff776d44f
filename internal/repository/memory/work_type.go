package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
)

type workTypeRepository struct {
	store *Store
}

func NewWorkTypeRepository(store *Store) worktype.WorkTypeRepository {
	return &workTypeRepository{store: store}
}

func (r *workTypeRepository) GetByID(ctx context.Context, id string) (worktype.WorkType, error) {
	defer r.store.lock(ctx)()

	wt, ok := r.store.workTypes[id]
	if !ok {
		return worktype.WorkType{}, worktype.ErrWorkTypeNotFound
	}
	return wt, nil
}

func (r *workTypeRepository) List(ctx context.Context, department *string) ([]worktype.WorkType, error) {
	defer r.store.lock(ctx)()

	result := make([]worktype.WorkType, 0, len(r.store.workTypes))
	for _, wt := range r.store.workTypes {
		if department != nil && wt.Department != *department {
			continue
		}
		result = append(result, wt)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Department != result[j].Department {
			return result[i].Department < result[j].Department
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}
