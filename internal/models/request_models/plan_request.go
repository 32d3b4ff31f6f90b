package request_models

import "github.com/shopspring/decimal"

type UpsertPlanRequest struct {
	Name     string          `json:"name" binding:"required,max=60"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
	Duration string          `json:"duration" binding:"required,max=40"`
	Status   string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

type PlanInfoRequest struct {
	Line1 string `json:"line1" binding:"required,max=30"`
	Line2 string `json:"line2" binding:"required,max=30"`
	Line3 string `json:"line3" binding:"required,max=30"`
	Line4 string `json:"line4" binding:"required,max=30"`
	Line5 string `json:"line5" binding:"required,max=30"`
	Line6 string `json:"line6" binding:"omitempty,max=60"`
	Line7 string `json:"line7" binding:"omitempty,max=30"`
}
