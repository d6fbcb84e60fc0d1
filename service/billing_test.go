package service

import (
	"catalog-service/dto"
	"catalog-service/repository/repotest"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSubscriptionCrud(t *testing.T) {
	repo := repotest.Open(t)
	svc := NewBillingService(repo, &fakeGateway{})
	ctx := context.Background()

	_, err := svc.CreateSubscription(ctx, dto.SubscriptionRequest{PlanName: "Basic"})
	assert.ErrorIs(t, err, ErrValidation)

	price := 9.99
	created, err := svc.CreateSubscription(ctx, dto.SubscriptionRequest{
		PlanName: " Basic ",
		Price:    &price,
		Features: []string{"HD", " ", " ads "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Basic", created.PlanName)

	stored, err := svc.GetSubscription(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"HD", "ads"}, []string(stored.Features))

	newPrice := 12.5
	updated, err := svc.UpdateSubscription(ctx, created.ID, dto.SubscriptionPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Basic", updated.PlanName)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, []string{"HD", "ads"}, []string(updated.Features))

	all, err := svc.ListSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteSubscription(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteSubscription(ctx, created.ID), ErrNotFound)
	_, err = svc.UpdateSubscription(ctx, created.ID, dto.SubscriptionPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutConvertsToMinorUnits(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewBillingService(repotest.Open(t), gateway)
	ctx := context.Background()
	identity := Identity{UserID: 1}

	res, err := svc.Checkout(ctx, identity, dto.CheckoutRequest{Amount: 19.99})
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_test", res.ClientSecret)

	_, err = svc.Checkout(ctx, identity, dto.CheckoutRequest{Amount: 12.35})
	require.NoError(t, err)
	assert.Equal(t, []int64{1999, 1235}, gateway.amounts)

	_, err = svc.Checkout(ctx, identity, dto.CheckoutRequest{Amount: 0.001})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckoutGatewayFailure(t *testing.T) {
	svc := NewBillingService(repotest.Open(t), &fakeGateway{err: errBoom})

	_, err := svc.Checkout(context.Background(), Identity{UserID: 1}, dto.CheckoutRequest{Amount: 5})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, errBoom)
}
