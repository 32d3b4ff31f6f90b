package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// MembershipPlan is a sellable plan. FinalPrice is always derived from
// Price and Discount by the plan service.
type MembershipPlan struct {
	BaseModel
	Name       string          `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	FinalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Duration   string          `gorm:"not null"` // free text, e.g. "30 days"
	Status     PlanStatus      `gorm:"type:varchar(16);default:active;index"`

	Info *PlanInfo `gorm:"foreignKey:MembershipID"`
}

// PlanInfo holds the display lines of a plan card.
type PlanInfo struct {
	BaseModel
	MembershipID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Line1        string    `gorm:"size:30"`
	Line2        string    `gorm:"size:30"`
	Line3        string    `gorm:"size:30"`
	Line4        string    `gorm:"size:30"`
	Line5        string    `gorm:"size:30"`
	Line6        string    `gorm:"size:60"` // motivation
	Line7        string    `gorm:"size:30"` // footnote
}
