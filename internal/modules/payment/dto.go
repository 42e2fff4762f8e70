package payment

type InitPaymentRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type InitPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	PaymentURL    string `json:"payment_url"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
}
