package overtime

import "context"

type OvertimeRepository interface {
	// GetByWorkTypeID returns nil, nil when the work type has no config.
	GetByWorkTypeID(ctx context.Context, workTypeID string) (*OvertimeConfig, error)
	Upsert(ctx context.Context, cfg OvertimeConfig) (OvertimeConfig, error)
}
