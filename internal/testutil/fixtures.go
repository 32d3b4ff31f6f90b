package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymstar/internal/models/db_models"
	"gymstar/pkg/utils"
)

const TestPassword = "secret123"

// TestAccount creates a customer whose password is TestPassword.
func TestAccount(t *testing.T, db *gorm.DB, opts ...func(*db_models.Account)) *db_models.Account {
	t.Helper()

	hash, err := utils.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	account := &db_models.Account{
		Name:         "Test Member",
		Email:        fmt.Sprintf("member_%d@example.com", time.Now().UnixNano()),
		PasswordHash: hash,
		Role:         db_models.RoleCustomer,
	}

	for _, opt := range opts {
		opt(account)
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return account
}

func WithEmail(email string) func(*db_models.Account) {
	return func(a *db_models.Account) {
		a.Email = email
	}
}

func WithRole(role db_models.Role) func(*db_models.Account) {
	return func(a *db_models.Account) {
		a.Role = role
	}
}

// TestPlan creates an active 30 day plan priced at 1000 with no discount.
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*db_models.MembershipPlan)) *db_models.MembershipPlan {
	t.Helper()

	plan := &db_models.MembershipPlan{
		Name:     fmt.Sprintf("Plan %d", time.Now().UnixNano()%10000),
		Price:    decimal.NewFromInt(1000),
		Discount: decimal.Zero,
		Duration: "30 days",
		Status:   db_models.PlanStatusActive,
	}

	for _, opt := range opts {
		opt(plan)
	}
	plan.FinalPrice = utils.FinalPrice(plan.Price, plan.Discount)

	if err := db.Omit(clause.Associations).Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

func WithPlanName(name string) func(*db_models.MembershipPlan) {
	return func(p *db_models.MembershipPlan) {
		p.Name = name
	}
}

func WithPricing(price, discount int64) func(*db_models.MembershipPlan) {
	return func(p *db_models.MembershipPlan) {
		p.Price = decimal.NewFromInt(price)
		p.Discount = decimal.NewFromInt(discount)
	}
}

func WithDuration(duration string) func(*db_models.MembershipPlan) {
	return func(p *db_models.MembershipPlan) {
		p.Duration = duration
	}
}

func WithStatus(status db_models.PlanStatus) func(*db_models.MembershipPlan) {
	return func(p *db_models.MembershipPlan) {
		p.Status = status
	}
}

func WithPlanCreatedAt(ts time.Time) func(*db_models.MembershipPlan) {
	return func(p *db_models.MembershipPlan) {
		p.CreatedAt = ts.Unix()
	}
}

func TestPlanInfo(t *testing.T, db *gorm.DB, membershipID uuid.UUID) *db_models.PlanInfo {
	t.Helper()

	info := &db_models.PlanInfo{
		MembershipID: membershipID,
		Line1:        "Full gym access",
		Line2:        "Locker room",
		Line3:        "Cardio zone",
		Line4:        "Free weights",
		Line5:        "Group classes",
		Line6:        "Stronger every day",
	}
	if err := db.Create(info).Error; err != nil {
		t.Fatalf("Failed to create test plan info: %v", err)
	}
	return info
}

// TestSubscription creates a paid subscription running from start to expiry.
func TestSubscription(
	t *testing.T,
	db *gorm.DB,
	userID, membershipID uuid.UUID,
	start, expiry time.Time,
	opts ...func(*db_models.Subscription),
) *db_models.Subscription {
	t.Helper()

	sub := &db_models.Subscription{
		UserID:            userID,
		MembershipID:      membershipID,
		StartDate:         start.Unix(),
		ExpiryDate:        expiry.Unix(),
		Subtotal:          decimal.NewFromInt(1000),
		Discount:          decimal.Zero,
		Total:             decimal.NewFromInt(1000),
		Promocode:         "None",
		PaymentStatus:     db_models.PaymentPaid,
		Provider:          "stripe",
		ProviderSessionID: "cs_test_" + uuid.NewString(),
		BaseModel:         db_models.BaseModel{CreatedAt: start.Unix()},
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Omit(clause.Associations).Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

func WithTotal(total int64) func(*db_models.Subscription) {
	return func(s *db_models.Subscription) {
		s.Total = decimal.NewFromInt(total)
		s.Subtotal = decimal.NewFromInt(total)
	}
}

func WithExtended() func(*db_models.Subscription) {
	return func(s *db_models.Subscription) {
		s.IsExtended = true
	}
}

func WithCreatedAt(ts time.Time) func(*db_models.Subscription) {
	return func(s *db_models.Subscription) {
		s.CreatedAt = ts.Unix()
	}
}

func WithSessionID(id string) func(*db_models.Subscription) {
	return func(s *db_models.Subscription) {
		s.ProviderSessionID = id
	}
}
