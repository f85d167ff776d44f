package overtime

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
)

type OvertimeServiceImpl struct {
	workTypeRepo worktype.WorkTypeRepository
	overtimeRepo overtime.OvertimeRepository
}

func NewOvertimeService(workTypeRepo worktype.WorkTypeRepository, overtimeRepo overtime.OvertimeRepository) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		workTypeRepo: workTypeRepo,
		overtimeRepo: overtimeRepo,
	}
}

func (s *OvertimeServiceImpl) GetOvertimeConfig(ctx context.Context, workTypeID string) (*overtime.OvertimeConfigResponse, error) {
	if _, err := s.workTypeRepo.GetByID(ctx, workTypeID); err != nil {
		return nil, err
	}

	cfg, err := s.overtimeRepo.GetByWorkTypeID(ctx, workTypeID)
	if err != nil || cfg == nil {
		return nil, err
	}

	resp := overtime.NewOvertimeConfigResponse(*cfg)
	return &resp, nil
}

func (s *OvertimeServiceImpl) UpsertOvertimeConfig(ctx context.Context, req overtime.UpsertOvertimeConfigRequest) (overtime.OvertimeConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeConfigResponse{}, err
	}

	if _, err := s.workTypeRepo.GetByID(ctx, req.WorkTypeID); err != nil {
		return overtime.OvertimeConfigResponse{}, err
	}

	saved, err := s.overtimeRepo.Upsert(ctx, overtime.OvertimeConfig{
		WorkTypeID:           req.WorkTypeID,
		OvertimePricePerWeld: req.OvertimePricePerWeld,
		OvertimePercentage:   req.OvertimePercentage,
	})
	if err != nil {
		return overtime.OvertimeConfigResponse{}, err
	}

	slog.InfoContext(ctx, "Saved overtime config",
		"work_type_id", saved.WorkTypeID,
		"overtime_price_per_weld", saved.OvertimePricePerWeld,
		"overtime_percentage", saved.OvertimePercentage.String(),
	)

	return overtime.NewOvertimeConfigResponse(saved), nil
}
