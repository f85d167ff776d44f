package overtime

import (
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

type UpsertOvertimeConfigRequest struct {
	WorkTypeID           string          `json:"-"`
	OvertimePricePerWeld int64           `json:"overtime_price_per_weld"`
	OvertimePercentage   decimal.Decimal `json:"overtime_percentage"`
}

func (r *UpsertOvertimeConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkTypeID) {
		errs.Add("work_type_id", "is required")
	}
	if r.OvertimePricePerWeld < 0 {
		errs.Add("overtime_price_per_weld", "must be non-negative")
	}
	if r.OvertimePercentage.IsNegative() || r.OvertimePercentage.GreaterThan(maxPercentage) {
		errs.Add("overtime_percentage", "must be between 0 and 100")
	}

	return errs.Err()
}

type OvertimeConfigResponse struct {
	ID                   string          `json:"id"`
	WorkTypeID           string          `json:"work_type_id"`
	OvertimePricePerWeld int64           `json:"overtime_price_per_weld"`
	OvertimePercentage   decimal.Decimal `json:"overtime_percentage"`
}

func NewOvertimeConfigResponse(cfg OvertimeConfig) OvertimeConfigResponse {
	return OvertimeConfigResponse{
		ID:                   cfg.ID,
		WorkTypeID:           cfg.WorkTypeID,
		OvertimePricePerWeld: cfg.OvertimePricePerWeld,
		OvertimePercentage:   cfg.OvertimePercentage,
	}
}
