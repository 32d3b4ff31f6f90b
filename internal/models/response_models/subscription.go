package response_models

type SubscriptionResponse struct {
	ID             string `json:"id"`
	MembershipID   string `json:"membership_id"`
	MembershipName string `json:"membership_name,omitempty"`
	StartDate      int64  `json:"start_date"`
	ExpiryDate     int64  `json:"expiry_date"`
	Subtotal       string `json:"subtotal"`
	Discount       string `json:"discount"`
	Total          string `json:"total"`
	Promocode      string `json:"promocode"`
	PaymentStatus  string `json:"payment_status"`
	IsExtended     bool   `json:"is_extended"`
	Status         string `json:"status,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

type CreateCheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	Mode        string `json:"mode"`
	Provider    string `json:"provider"`
}

type CompletePaymentResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	Replayed     bool                 `json:"replayed"`
}
