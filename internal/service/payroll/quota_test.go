package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/stretchr/testify/assert"
)

func TestRemainingQuota(t *testing.T) {
	item := workitem.WorkItem{ID: "item-1", TotalQuantity: 100, QuantityMade: 60}
	own := &workrecord.WorkRecord{WorkItemID: strPtr("item-1"), Quantity: dec("60")}
	other := &workrecord.WorkRecord{WorkItemID: strPtr("item-2"), Quantity: dec("60")}
	unlinked := &workrecord.WorkRecord{Quantity: dec("8")}

	tests := []struct {
		name     string
		excluded *workrecord.WorkRecord
		made     int64
		want     int64
	}{
		{"no exclusion", nil, 60, 40},
		{"own contribution excluded", own, 0, 100},
		{"record on another item", other, 60, 40},
		{"record without item", unlinked, 60, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.made, QuantityMade(item, tt.excluded))
			assert.Equal(t, tt.want, RemainingQuota(item, tt.excluded))
		})
	}
}

func TestRemainingQuota_Overbooked(t *testing.T) {
	item := workitem.WorkItem{ID: "item-1", TotalQuantity: 10, QuantityMade: 12}
	assert.Equal(t, int64(-2), RemainingQuota(item, nil))
}

func strPtr(s string) *string { return &s }
