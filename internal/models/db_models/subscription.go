package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusUpcoming SubscriptionStatus = "upcoming"
	SubStatusExpired  SubscriptionStatus = "expired"
)

// Subscription is an append-only ledger row written once a checkout is paid.
type Subscription struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	MembershipID uuid.UUID `gorm:"type:uuid;index;not null"`

	StartDate  int64 `gorm:"not null"`
	ExpiryDate int64 `gorm:"not null;index"`

	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Promocode     string          `gorm:"default:None"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(16);default:paid"`
	IsExtended    bool            `gorm:"default:false"`

	Provider          string `gorm:"index"` // "stripe"
	ProviderSessionID string `gorm:"uniqueIndex"`

	Metadata datatypes.JSON

	Membership MembershipPlan `gorm:"foreignKey:MembershipID"`
}

// StatusAt classifies the subscription relative to the unix time t.
func (s *Subscription) StatusAt(t int64) SubscriptionStatus {
	switch {
	case s.StartDate > t:
		return SubStatusUpcoming
	case s.ExpiryDate < t:
		return SubStatusExpired
	default:
		return SubStatusActive
	}
}

// IsActiveAt reports whether the subscription still runs after t.
func (s *Subscription) IsActiveAt(t int64) bool {
	return s.ExpiryDate > t
}
