package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymstar/internal/models/db_models"
)

// BuildSubscription turns the user's prior subscriptions, latest expiry
// first, into the row to insert.
type BuildSubscription func(prior []db_models.Subscription) (*db_models.Subscription, error)

type SubscriptionRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Subscription, error)
	FindBySessionID(ctx context.Context, sessionID string) (*db_models.Subscription, error)
	// CreateOnce inserts at most one subscription per provider session. The
	// returned flag is true when the session had already been recorded.
	CreateOnce(ctx context.Context, userID uuid.UUID, sessionID string, build BuildSubscription) (*db_models.Subscription, bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// ListByUser returns the user's subscriptions with their plan, newest start first.
func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Subscription, error) {
	var subs []db_models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Membership").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) FindBySessionID(ctx context.Context, sessionID string) (*db_models.Subscription, error) {
	return findBySession(r.db.WithContext(ctx), sessionID)
}

func (r *subscriptionRepository) CreateOnce(
	ctx context.Context,
	userID uuid.UUID,
	sessionID string,
	build BuildSubscription,
) (*db_models.Subscription, bool, error) {

	var (
		result   *db_models.Subscription
		replayed bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serializes completions of one user.
		var account db_models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&account, "id = ?", userID).Error; err != nil {
			return err
		}

		existing, err := findBySession(tx, sessionID)
		if err != nil {
			return err
		}
		if existing != nil {
			result, replayed = existing, true
			return nil
		}

		var prior []db_models.Subscription
		if err := tx.Where("user_id = ?", userID).
			Order("expiry_date DESC").
			Order("created_at DESC").
			Find(&prior).Error; err != nil {
			return err
		}

		sub, err := build(prior)
		if err != nil {
			return err
		}
		sub.ProviderSessionID = sessionID
		if err := tx.Omit(clause.Associations).Create(sub).Error; err != nil {
			return err
		}
		result = sub
		return nil
	})

	if err != nil {
		// A concurrent request may have won the unique index on the session id.
		if existing, findErr := r.FindBySessionID(ctx, sessionID); findErr == nil && existing != nil {
			return existing, true, nil
		}
		return nil, false, err
	}
	return result, replayed, nil
}

func findBySession(db *gorm.DB, sessionID string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := db.Where("provider_session_id = ?", sessionID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}
