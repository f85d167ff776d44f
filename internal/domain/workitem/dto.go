package workitem

type WorkItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PricePerWeld  int64  `json:"price_per_weld"`
	WeldsPerItem  int64  `json:"welds_per_item"`
	TotalQuantity int64  `json:"total_quantity"`
	QuantityMade  int64  `json:"quantity_made"`
	Remaining     int64  `json:"remaining"`
	Status        string `json:"status"`
}

type RemainingQuotaResponse struct {
	WorkItemID       string  `json:"work_item_id"`
	TotalQuantity    int64   `json:"total_quantity"`
	QuantityMade     int64   `json:"quantity_made"`
	Remaining        int64   `json:"remaining"`
	ExcludedRecordID *string `json:"excluded_record_id,omitempty"`
}
