package payroll

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	minQuantity      = decimal.RequireFromString("0.01")
	minOvertimeHours = decimal.RequireFromString("0.5")
	hundred          = decimal.NewFromInt(100)

	// MaxQuantity bounds quantity and overtime_quantity to what NUMERIC(12,2) stores.
	MaxQuantity = decimal.NewFromInt(10_000_000_000)
	// MaxOvertimeHours is one day of overtime on a single record.
	MaxOvertimeHours = decimal.NewFromInt(24)
)

// amountOutOfRange is reported on quantity when a priced amount does not fit in int64.
const amountOutOfRange = "results in an amount outside the supported range"

// LineInput is everything needed to price one work record.
type LineInput struct {
	Pricing          Pricing
	Overtime         *overtime.OvertimeConfig // nil means no differential
	Quantity         decimal.Decimal
	IsOvertime       bool
	OvertimeQuantity *int64
	OvertimeHours    *decimal.Decimal
	// Remaining is the work item headroom with the edited record's own
	// contribution already excluded. nil skips the quota check.
	Remaining *int64
}

// Normalized drops overtime fields from a record that is not overtime.
func (in LineInput) Normalized() LineInput {
	if !in.IsOvertime {
		in.OvertimeQuantity = nil
		in.OvertimeHours = nil
	}
	return in
}

// LineAmount is the priced result in minor currency units.
type LineAmount struct {
	UnitPrice      int64
	BaseAmount     int64
	OvertimeAmount int64
	TotalAmount    int64
}

type LineCalculator struct {
}

func NewLineCalculator() *LineCalculator {
	return &LineCalculator{}
}

// Compute validates in and prices it. Field problems come back together as
// validator.ValidationErrors; overtime on daily work adds
// workrecord.ErrUnsupportedCalculationMode; quota violations are returned as
// *workitem.QuotaExceededError once the fields are valid.
func (c *LineCalculator) Compute(in LineInput) (LineAmount, error) {
	in = in.Normalized()

	if err := c.Validate(in); err != nil {
		return LineAmount{}, err
	}

	switch p := in.Pricing.(type) {
	case WeldCountPricing:
		if err := checkQuota(p, in); err != nil {
			return LineAmount{}, err
		}
		return c.weldCount(p, in)
	case HourlyPricing:
		return c.hourly(p, in)
	case DailyPricing:
		base := in.Quantity.Mul(decimal.NewFromInt(p.UnitPrice))
		return lineAmount(p.UnitPrice, base, decimal.Zero)
	default:
		return LineAmount{}, fmt.Errorf("unsupported pricing %T", in.Pricing)
	}
}

// Validate runs the field rules for in's calculation mode without pricing it.
func (c *LineCalculator) Validate(in LineInput) error {
	in = in.Normalized()

	var errs validator.ValidationErrors
	var modeErr error

	switch in.Pricing.(type) {
	case WeldCountPricing:
		switch {
		case !in.Quantity.IsPositive() || !validator.IsWholeNumber(in.Quantity):
			errs.Add("quantity", "must be a positive integer")
		case in.Quantity.GreaterThanOrEqual(MaxQuantity):
			errs.Add("quantity", "must be less than "+MaxQuantity.String())
		}
		if in.OvertimeHours != nil {
			errs.Add("overtime_hours", "is not applicable to weld_count work types")
		}
		if in.IsOvertime {
			switch {
			case in.OvertimeQuantity == nil:
				errs.Add("overtime_quantity", "is required for overtime")
			case *in.OvertimeQuantity < 1:
				errs.Add("overtime_quantity", "must be a positive integer")
			case *in.OvertimeQuantity >= MaxQuantity.IntPart():
				errs.Add("overtime_quantity", "must be less than "+MaxQuantity.String())
			}
		}
	case HourlyPricing:
		validateFractionalQuantity(&errs, in.Quantity)
		if in.OvertimeQuantity != nil {
			errs.Add("overtime_quantity", "is not applicable to hourly work types")
		}
		if in.IsOvertime {
			switch {
			case in.OvertimeHours == nil:
				errs.Add("overtime_hours", "is required for overtime")
			case in.OvertimeHours.LessThan(minOvertimeHours):
				errs.Add("overtime_hours", "must be at least 0.5")
			case in.OvertimeHours.GreaterThan(MaxOvertimeHours):
				errs.Add("overtime_hours", "must not exceed 24")
			case !validator.IsHalfStep(*in.OvertimeHours):
				errs.Add("overtime_hours", "must be a multiple of 0.5")
			}
		}
	case DailyPricing:
		validateFractionalQuantity(&errs, in.Quantity)
		if in.IsOvertime {
			modeErr = workrecord.ErrUnsupportedCalculationMode
		}
	case nil:
		errs.Add("work_type_id", "has no pricing")
	default:
		return fmt.Errorf("unsupported pricing %T", in.Pricing)
	}

	switch {
	case len(errs) > 0 && modeErr != nil:
		return errors.Join(errs, modeErr)
	case modeErr != nil:
		return modeErr
	default:
		return errs.Err()
	}
}

func validateFractionalQuantity(errs *validator.ValidationErrors, quantity decimal.Decimal) {
	switch {
	case quantity.LessThan(minQuantity):
		errs.Add("quantity", "must be at least 0.01")
	case quantity.GreaterThanOrEqual(MaxQuantity):
		errs.Add("quantity", "must be less than "+MaxQuantity.String())
	case !validator.MaxScale(quantity, 2):
		errs.Add("quantity", "must have at most 2 decimal places")
	}
}

// checkQuota reports the quantity-only violation ahead of the combined one.
// Validate has bounded both quantities, so IntPart cannot wrap.
func checkQuota(p WeldCountPricing, in LineInput) error {
	if in.Remaining == nil {
		return nil
	}
	remaining := *in.Remaining
	quantity := in.Quantity.IntPart()

	if quantity > remaining {
		return &workitem.QuotaExceededError{WorkItemID: p.WorkItemID, Requested: quantity, Remaining: remaining}
	}
	if in.IsOvertime && in.OvertimeQuantity != nil && *in.OvertimeQuantity > remaining-quantity {
		return &workitem.QuotaExceededError{WorkItemID: p.WorkItemID, Requested: quantity + *in.OvertimeQuantity, Remaining: remaining}
	}
	return nil
}

func (c *LineCalculator) weldCount(p WeldCountPricing, in LineInput) (LineAmount, error) {
	welds := decimal.NewFromInt(p.WeldsPerItem)
	base := in.Quantity.Mul(welds).Mul(decimal.NewFromInt(p.PricePerWeld))

	overtimeAmount := decimal.Zero
	if in.IsOvertime {
		overtimeUnitPrice := decimal.NewFromInt(p.PricePerWeld).Add(decimal.NewFromInt(in.Overtime.PricePerWeld()))
		overtimeAmount = decimal.NewFromInt(*in.OvertimeQuantity).Mul(welds).Mul(overtimeUnitPrice)
	}

	return lineAmount(p.PricePerWeld, base, overtimeAmount)
}

func (c *LineCalculator) hourly(p HourlyPricing, in LineInput) (LineAmount, error) {
	unitPrice := decimal.NewFromInt(p.UnitPrice)
	base := in.Quantity.Mul(unitPrice)

	overtimeAmount := decimal.Zero
	if in.IsOvertime {
		multiplier := hundred.Add(in.Overtime.Percentage()).Div(hundred)
		overtimeAmount = in.OvertimeHours.Mul(unitPrice).Mul(multiplier)
	}

	return lineAmount(p.UnitPrice, base, overtimeAmount)
}

// lineAmount rounds each part and fails when the parts or their sum overflow int64.
func lineAmount(unitPrice int64, base, overtime decimal.Decimal) (LineAmount, error) {
	baseMinor, okBase := roundMinor(base)
	overtimeMinor, okOvertime := roundMinor(overtime)
	total, okTotal := roundMinor(base.Round(0).Add(overtime.Round(0)))
	if !okBase || !okOvertime || !okTotal {
		var errs validator.ValidationErrors
		errs.Add("quantity", amountOutOfRange)
		return LineAmount{}, errs.Err()
	}

	return LineAmount{
		UnitPrice:      unitPrice,
		BaseAmount:     baseMinor,
		OvertimeAmount: overtimeMinor,
		TotalAmount:    total,
	}, nil
}

// roundMinor rounds half away from zero to a whole minor unit. ok is false
// when the result does not fit in int64.
func roundMinor(d decimal.Decimal) (int64, bool) {
	rounded := d.Round(0)
	if !rounded.BigInt().IsInt64() {
		return 0, false
	}
	return rounded.IntPart(), true
}
