package worktype

type WorkTypeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Department      string `json:"department"`
	CalculationType string `json:"calculation_type"`
	UnitPrice       int64  `json:"unit_price"`
}

func NewWorkTypeResponse(w WorkType) WorkTypeResponse {
	return WorkTypeResponse{
		ID:              w.ID,
		Name:            w.Name,
		Department:      w.Department,
		CalculationType: string(w.CalculationType),
		UnitPrice:       w.UnitPrice,
	}
}
