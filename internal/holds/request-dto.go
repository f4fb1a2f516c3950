package holds

type CreateHoldRequest struct {
	ShowID   string   `json:"show_id" binding:"required,uuid4"`
	SeatIDs  []string `json:"seat_ids" binding:"required,min=1,max=10,dive,seatid"`
	Quantity int      `json:"quantity" binding:"required,min=1,max=10"`
}
