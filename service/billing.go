package service

import (
	"catalog-service/dto"
	"catalog-service/entities"
	"catalog-service/repository"
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"math"
	"strings"
)

// PaymentGateway creates a payment for an amount in the smallest currency
// unit and returns the client secret the front end confirms it with.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64) (string, error)
}

type BillingService interface {
	ListSubscriptions(ctx context.Context) ([]*entities.Subscription, error)
	GetSubscription(ctx context.Context, id uint) (*entities.Subscription, error)
	CreateSubscription(ctx context.Context, req dto.SubscriptionRequest) (*entities.Subscription, error)
	UpdateSubscription(ctx context.Context, id uint, patch dto.SubscriptionPatch) (*entities.Subscription, error)
	DeleteSubscription(ctx context.Context, id uint) error
	Checkout(ctx context.Context, identity Identity, req dto.CheckoutRequest) (dto.CheckoutResponse, error)
}

type billingService struct {
	repo     repository.Repository
	payments PaymentGateway
}

func NewBillingService(repo repository.Repository, payments PaymentGateway) BillingService {
	return &billingService{repo: repo, payments: payments}
}

func (s *billingService) ListSubscriptions(ctx context.Context) ([]*entities.Subscription, error) {
	subscriptions, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list subscriptions")
		return nil, persistence(err)
	}
	return subscriptions, nil
}

func (s *billingService) GetSubscription(ctx context.Context, id uint) (*entities.Subscription, error) {
	subscription, err := s.repo.FindSubscriptionById(ctx, id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, notFound("subscription %d", id)
	}
	if err != nil {
		return nil, persistence(err)
	}
	return subscription, nil
}

func (s *billingService) CreateSubscription(ctx context.Context, req dto.SubscriptionRequest) (*entities.Subscription, error) {
	if req.Price == nil {
		return nil, NewValidationError("price", "The price field is required.")
	}
	subscription := &entities.Subscription{
		PlanName:    strings.TrimSpace(req.PlanName),
		Price:       *req.Price,
		Description: req.Description,
		Features:    features(req.Features),
	}
	if err := s.repo.CreateSubscription(ctx, subscription); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create subscription")
		return nil, persistence(err)
	}
	return subscription, nil
}

func (s *billingService) UpdateSubscription(ctx context.Context, id uint, patch dto.SubscriptionPatch) (*entities.Subscription, error) {
	subscription, err := s.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.PlanName != nil {
		subscription.PlanName = strings.TrimSpace(*patch.PlanName)
	}
	if patch.Price != nil {
		subscription.Price = *patch.Price
	}
	if patch.Description != nil {
		subscription.Description = patch.Description
	}
	if patch.Features != nil {
		subscription.Features = features(patch.Features)
	}
	if err := s.repo.SaveSubscription(ctx, subscription); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("subscription_id", id).Msg("failed to update subscription")
		return nil, persistence(err)
	}
	return subscription, nil
}

func (s *billingService) DeleteSubscription(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteSubscription(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("subscription_id", id).Msg("failed to delete subscription")
		return persistence(err)
	}
	if deleted == 0 {
		return notFound("subscription %d", id)
	}
	return nil
}

// Checkout charges amount, given in major currency units, to the caller.
func (s *billingService) Checkout(ctx context.Context, identity Identity, req dto.CheckoutRequest) (dto.CheckoutResponse, error) {
	cents := int64(math.Round(req.Amount * 100))
	if cents <= 0 {
		return dto.CheckoutResponse{}, NewValidationError("amount", "The amount must be greater than 0.")
	}

	secret, err := s.payments.CreatePaymentIntent(ctx, cents)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", identity.UserID).Int64("amount", cents).Msg("failed to create payment intent")
		return dto.CheckoutResponse{}, fmt.Errorf("%w: payment: %w", ErrUnavailable, err)
	}

	zerolog.Ctx(ctx).Info().Uint("user_id", identity.UserID).Int64("amount", cents).Msg("payment intent created")
	return dto.CheckoutResponse{ClientSecret: secret}, nil
}

func features(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
