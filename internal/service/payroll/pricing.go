package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
)

// Pricing is the closed set of calculation modes. Only the types in this
// package implement it.
type Pricing interface {
	CalculationType() worktype.CalculationType
	pricing()
}

type WeldCountPricing struct {
	WorkItemID   string
	PricePerWeld int64
	WeldsPerItem int64
}

type HourlyPricing struct {
	UnitPrice int64
}

type DailyPricing struct {
	UnitPrice int64
}

func (WeldCountPricing) CalculationType() worktype.CalculationType {
	return worktype.CalculationTypeWeldCount
}

func (HourlyPricing) CalculationType() worktype.CalculationType {
	return worktype.CalculationTypeHourly
}

func (DailyPricing) CalculationType() worktype.CalculationType {
	return worktype.CalculationTypeDaily
}

func (WeldCountPricing) pricing() {}
func (HourlyPricing) pricing() {}
func (DailyPricing) pricing() {}

// ValidateWorkItemRef enforces that a work item is referenced iff the work type is weld_count.
func ValidateWorkItemRef(ct worktype.CalculationType, workItemID *string) error {
	var errs validator.ValidationErrors

	switch {
	case ct == worktype.CalculationTypeWeldCount && workItemID == nil:
		errs.Add("work_item_id", "is required for weld_count work types")
	case ct != worktype.CalculationTypeWeldCount && workItemID != nil:
		errs.Add("work_item_id", "must be empty unless the work type is weld_count")
	}

	return errs.Err()
}

// PricingFor builds the pricing for a work type. item is required for
// weld_count and must be nil otherwise; unitPrice overrides the work type's
// price for hourly and daily records.
func PricingFor(wt worktype.WorkType, item *workitem.WorkItem, unitPrice *int64) (Pricing, error) {
	var itemID *string
	if item != nil {
		itemID = &item.ID
	}
	if err := ValidateWorkItemRef(wt.CalculationType, itemID); err != nil {
		return nil, err
	}

	price := wt.UnitPrice
	if unitPrice != nil {
		price = *unitPrice
	}

	switch wt.CalculationType {
	case worktype.CalculationTypeWeldCount:
		return WeldCountPricing{
			WorkItemID:   item.ID,
			PricePerWeld: item.PricePerWeld,
			WeldsPerItem: item.WeldsPerItem,
		}, nil
	case worktype.CalculationTypeHourly:
		return HourlyPricing{UnitPrice: price}, nil
	case worktype.CalculationTypeDaily:
		return DailyPricing{UnitPrice: price}, nil
	default:
		return nil, fmt.Errorf("work type %s has unknown calculation type %q", wt.ID, wt.CalculationType)
	}
}
