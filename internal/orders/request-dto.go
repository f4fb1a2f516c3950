package orders

type CustomerRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=255"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,phone"`
}

type CreateOrderRequest struct {
	HoldID   string          `json:"hold_id" binding:"required,uuid4"`
	Customer CustomerRequest `json:"customer" binding:"required"`
}
