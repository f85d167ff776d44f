package payroll

import (
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
)

// QuantityMade is the item's counter without the contribution of excluded.
// excluded only counts when it is linked to item.
func QuantityMade(item workitem.WorkItem, excluded *workrecord.WorkRecord) int64 {
	made := item.QuantityMade
	if excluded != nil && excluded.WorkItemID != nil && *excluded.WorkItemID == item.ID {
		made -= excluded.ItemQuantity()
	}
	return made
}

// RemainingQuota is the headroom an edit of excluded may use. It is negative
// when the item is already overbooked.
func RemainingQuota(item workitem.WorkItem, excluded *workrecord.WorkRecord) int64 {
	return item.TotalQuantity - QuantityMade(item, excluded)
}
