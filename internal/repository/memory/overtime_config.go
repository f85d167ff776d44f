package memory

import (
	"context"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
)

type overtimeRepository struct {
	store *Store
}

func NewOvertimeRepository(store *Store) overtime.OvertimeRepository {
	return &overtimeRepository{store: store}
}

func (r *overtimeRepository) GetByWorkTypeID(ctx context.Context, workTypeID string) (*overtime.OvertimeConfig, error) {
	defer r.store.lock(ctx)()

	cfg, ok := r.store.overtime[workTypeID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (r *overtimeRepository) Upsert(ctx context.Context, cfg overtime.OvertimeConfig) (overtime.OvertimeConfig, error) {
	defer r.store.lock(ctx)()

	now := r.store.now()
	if existing, ok := r.store.overtime[cfg.WorkTypeID]; ok {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
	} else {
		cfg.ID = newID()
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now
	r.store.overtime[cfg.WorkTypeID] = cfg
	return cfg, nil
}
