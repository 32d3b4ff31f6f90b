package request_models

type CheckoutRequest struct {
	MembershipID string `json:"membership_id" binding:"required,uuid"`
}

type CompletePaymentRequest struct {
	SessionID string `json:"session_id" form:"session_id" binding:"required"`
}
