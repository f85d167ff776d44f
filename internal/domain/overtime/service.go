package overtime

import "context"

type OvertimeService interface {
	// GetOvertimeConfig returns nil, nil when the work type exists but is unconfigured.
	GetOvertimeConfig(ctx context.Context, workTypeID string) (*OvertimeConfigResponse, error)
	UpsertOvertimeConfig(ctx context.Context, req UpsertOvertimeConfigRequest) (OvertimeConfigResponse, error)
}
