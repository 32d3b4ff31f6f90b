package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gymstar/internal/models/response_models"
	"gymstar/internal/repositories"
	"gymstar/pkg/utils"
)

type SubscriptionService interface {
	// ListMine returns the user's subscriptions, latest start first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]response_models.SubscriptionResponse, error)
}

type subscriptionService struct {
	subRepo repositories.SubscriptionRepository
	now     func() time.Time
}

func NewSubscriptionService(subRepo repositories.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, now: time.Now}
}

func (s *subscriptionService) ListMine(ctx context.Context, userID uuid.UUID) ([]response_models.SubscriptionResponse, error) {
	subs, err := s.subRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list subscriptions: %v", utils.ErrDatabaseError, err)
	}

	now := s.now().Unix()
	result := make([]response_models.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		result = append(result, ToSubscriptionResponse(sub, sub.Membership.Name, now))
	}
	return result, nil
}
