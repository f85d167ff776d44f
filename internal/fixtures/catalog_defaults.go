package fixtures

import (
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/shopspring/decimal"
)

// Catalog is the reference data the in-memory driver starts with.
type Catalog struct {
	WorkTypes       []worktype.WorkType
	WorkItems       []workitem.WorkItem
	OvertimeConfigs []overtime.OvertimeConfig
}

// Stable IDs so local clients can reference the defaults.
const (
	WorkTypeWelding  = "wt-welding"
	WorkTypeAssembly = "wt-assembly"
	WorkTypeCleaning = "wt-cleaning"

	WorkItemFrame = "wi-frame"
	WorkItemGate  = "wi-gate"
)

// DefaultCatalog returns one work type per calculation mode plus two items.
func DefaultCatalog() Catalog {
	return Catalog{
		WorkTypes: []worktype.WorkType{
			{ID: WorkTypeWelding, Name: "Welding", Department: "production", CalculationType: worktype.CalculationTypeWeldCount},
			{ID: WorkTypeAssembly, Name: "Assembly", Department: "production", CalculationType: worktype.CalculationTypeHourly, UnitPrice: 50000},
			{ID: WorkTypeCleaning, Name: "Cleaning", Department: "facility", CalculationType: worktype.CalculationTypeDaily, UnitPrice: 200000},
		},
		WorkItems: []workitem.WorkItem{
			{ID: WorkItemFrame, Name: "Steel frame", PricePerWeld: 1000, WeldsPerItem: 5, TotalQuantity: 100, Status: workitem.StatusInProduction},
			{ID: WorkItemGate, Name: "Sliding gate", PricePerWeld: 1500, WeldsPerItem: 12, TotalQuantity: 40, Status: workitem.StatusNew},
		},
		OvertimeConfigs: []overtime.OvertimeConfig{
			{WorkTypeID: WorkTypeWelding, OvertimePricePerWeld: 500},
			{WorkTypeID: WorkTypeAssembly, OvertimePercentage: decimal.NewFromInt(50)},
		},
	}
}
