package repository

import (
	"catalog-service/entities"
	"context"
)

type SubscriptionRepository interface {
	ListSubscriptions(ctx context.Context) ([]*entities.Subscription, error)
	FindSubscriptionById(ctx context.Context, id uint) (*entities.Subscription, error)
	CreateSubscription(ctx context.Context, subscription *entities.Subscription) error
	SaveSubscription(ctx context.Context, subscription *entities.Subscription) error
	DeleteSubscription(ctx context.Context, id uint) (int64, error)
}

func (r *repo) ListSubscriptions(ctx context.Context) ([]*entities.Subscription, error) {
	var subscriptions []*entities.Subscription
	err := r.GetDB(ctx).Order("price ASC").Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) FindSubscriptionById(ctx context.Context, id uint) (*entities.Subscription, error) {
	subscription := &entities.Subscription{}
	err := r.GetDB(ctx).First(subscription, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (r *repo) CreateSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.GetDB(ctx).Create(subscription).Error
}

func (r *repo) SaveSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.GetDB(ctx).Save(subscription).Error
}

func (r *repo) DeleteSubscription(ctx context.Context, id uint) (int64, error) {
	res := r.GetDB(ctx).Delete(&entities.Subscription{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
