package response_models

type PlanInfoResponse struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	Line3 string `json:"line3"`
	Line4 string `json:"line4"`
	Line5 string `json:"line5"`
	Line6 string `json:"line6,omitempty"`
	Line7 string `json:"line7,omitempty"`
}

type PlanResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Price      string            `json:"price"`
	Discount   string            `json:"discount"`
	FinalPrice string            `json:"final_price"`
	Duration   string            `json:"duration"`
	PlanType   string            `json:"plan_type,omitempty"`
	Status     string            `json:"status"`
	PlanInfo   *PlanInfoResponse `json:"plan_info"`
}

// PlanStateResponse is a catalog plan as seen by one signed in customer.
type PlanStateResponse struct {
	Plan                PlanResponse          `json:"plan"`
	State               string                `json:"state"`
	CanPurchase         bool                  `json:"can_purchase"`
	CanExtend           bool                  `json:"can_extend"`
	CurrentSubscription *SubscriptionResponse `json:"current_subscription,omitempty"`
}
