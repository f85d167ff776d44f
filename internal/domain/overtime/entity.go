package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// OvertimeConfig - overtime differential for one work type.
// OvertimePricePerWeld applies to weld_count types, OvertimePercentage to hourly ones.
type OvertimeConfig struct {
	ID                   string
	WorkTypeID           string
	OvertimePricePerWeld int64
	OvertimePercentage   decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PricePerWeld returns the extra weld price, zero when cfg is nil.
func (cfg *OvertimeConfig) PricePerWeld() int64 {
	if cfg == nil {
		return 0
	}
	return cfg.OvertimePricePerWeld
}

// Percentage returns the hourly surcharge, zero when cfg is nil.
func (cfg *OvertimeConfig) Percentage() decimal.Decimal {
	if cfg == nil {
		return decimal.Zero
	}
	return cfg.OvertimePercentage
}
