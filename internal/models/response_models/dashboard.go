package response_models

type RevenueReport struct {
	Currency             string `json:"currency"`
	Total                string `json:"total"`
	Today                string `json:"today"`
	Last10Days           string `json:"last_10_days"`
	ThisMonth            string `json:"this_month"`
	LastMonth            string `json:"last_month"`
	Last3Months          string `json:"last_3_months"`
	Last6Months          string `json:"last_6_months"`
	CurrentFinancialYear string `json:"current_financial_year"`
	LastFinancialYear    string `json:"last_financial_year"`
}

type RevenueWindowResponse struct {
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	Amount string `json:"amount"`
}

type DashboardSummary struct {
	TotalCustomers     int64         `json:"total_customers"`
	TotalPlans         int64         `json:"total_plans"`
	ActivePlans        int64         `json:"active_plans"`
	InactivePlans      int64         `json:"inactive_plans"`
	TotalSubscriptions int64         `json:"total_subscriptions"`
	Revenue            RevenueReport `json:"revenue"`
}
