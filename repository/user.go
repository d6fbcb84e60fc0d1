package repository

import (
	"catalog-service/entities"
	"context"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *entities.User) error
	FindUserById(ctx context.Context, id uint) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	UserExists(ctx context.Context, id uint) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptUserId uint) (bool, error)
	SaveUser(ctx context.Context, user *entities.User) error
	UpdateUserPassword(ctx context.Context, id uint, hash string) error
	UpdateUserDeviceCount(ctx context.Context, id uint, count int64) error
}

func (r *repo) CreateUser(ctx context.Context, user *entities.User) error {
	return r.GetDB(ctx).Create(user).Error
}

func (r *repo) FindUserById(ctx context.Context, id uint) (*entities.User, error) {
	user := &entities.User{}
	err := r.GetDB(ctx).First(user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *repo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	user := &entities.User{}
	err := r.GetDB(ctx).First(user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *repo) UserExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.GetDB(ctx).Model(&entities.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repo) EmailTaken(ctx context.Context, email string, exceptUserId uint) (bool, error) {
	var n int64
	q := r.GetDB(ctx).Model(&entities.User{}).Where("email = ?", email)
	if exceptUserId != 0 {
		q = q.Where("id <> ?", exceptUserId)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repo) SaveUser(ctx context.Context, user *entities.User) error {
	return r.GetDB(ctx).Save(user).Error
}

func (r *repo) UpdateUserPassword(ctx context.Context, id uint, hash string) error {
	return r.GetDB(ctx).Model(&entities.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *repo) UpdateUserDeviceCount(ctx context.Context, id uint, count int64) error {
	return r.GetDB(ctx).Model(&entities.User{}).Where("id = ?", id).Update("device_count", count).Error
}
