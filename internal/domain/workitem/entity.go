package workitem

import "time"

// Status is informational; the calculator does not enforce it.
type Status string

const (
	StatusNew          Status = "new"
	StatusInProduction Status = "in_production"
	StatusDone         Status = "done"
)

// WorkItem - production item with a fixed required quantity
type WorkItem struct {
	ID            string
	Name          string
	PricePerWeld  int64
	WeldsPerItem  int64
	TotalQuantity int64
	QuantityMade  int64 // sum of linked work record quantities, overtime excluded
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Remaining is the signed headroom; negative means the item was already overbooked.
func (w WorkItem) Remaining() int64 {
	return w.TotalQuantity - w.QuantityMade
}
