package request_models

type RevenueDaysQuery struct {
	Days string `form:"days" binding:"required"`
}

type RevenueRangeQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}
