package repository

import (
	"catalog-service/constant"
	"catalog-service/entities"
	"context"
	"gorm.io/gorm/clause"
	"time"
)

type EngagementRepository interface {
	TouchHistory(ctx context.Context, userId, contentId uint) error
	ListHistory(ctx context.Context, userId uint, page Page) ([]*entities.Content, int64, error)

	FindLike(ctx context.Context, userId, contentId uint) (*entities.Like, error)
	CreateLike(ctx context.Context, like *entities.Like) error
	DeleteLike(ctx context.Context, id uint) error
	CountLikes(ctx context.Context, contentId uint) (int64, error)
	LikeCounts(ctx context.Context, contentIds []uint) (map[uint]int64, error)
	LikedBy(ctx context.Context, userId uint, contentIds []uint) (map[uint]bool, error)

	ListWishlistContents(ctx context.Context, userId uint) ([]*entities.Content, error)
	FindWishlistById(ctx context.Context, userId, id uint) (*entities.Wishlist, error)
	FindWishlist(ctx context.Context, userId, contentId uint) (*entities.Wishlist, error)
	CreateWishlist(ctx context.Context, wishlist *entities.Wishlist) error
	SaveWishlist(ctx context.Context, wishlist *entities.Wishlist) error
	DeleteWishlist(ctx context.Context, id uint) error
}

func (r *repo) TouchHistory(ctx context.Context, userId, contentId uint) error {
	row := &entities.History{UserID: userId, ContentID: contentId, UpdatedAt: time.Now()}
	return r.GetDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(row).Error
}

func (r *repo) ListHistory(ctx context.Context, userId uint, page Page) ([]*entities.Content, int64, error) {
	var total int64
	err := r.GetDB(ctx).Model(&entities.History{}).Where("user_id = ?", userId).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var contents []*entities.Content
	err = r.GetDB(ctx).Model(&entities.Content{}).
		Select("contents.*").
		Joins("JOIN histories ON histories.content_id = contents.id AND histories.user_id = ?", userId).
		Preload("Genre").
		Order("histories.updated_at DESC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

func (r *repo) FindLike(ctx context.Context, userId, contentId uint) (*entities.Like, error) {
	like := &entities.Like{}
	err := r.GetDB(ctx).First(like, "user_id = ? AND content_id = ?", userId, contentId).Error
	if err != nil {
		return nil, err
	}
	return like, nil
}

func (r *repo) CreateLike(ctx context.Context, like *entities.Like) error {
	return r.GetDB(ctx).Create(like).Error
}

func (r *repo) DeleteLike(ctx context.Context, id uint) error {
	return r.GetDB(ctx).Delete(&entities.Like{}, "id = ?", id).Error
}

func (r *repo) CountLikes(ctx context.Context, contentId uint) (int64, error) {
	var n int64
	err := r.GetDB(ctx).Model(&entities.Like{}).Where("content_id = ? AND is_liked = ?", contentId, true).Count(&n).Error
	return n, err
}

func (r *repo) LikeCounts(ctx context.Context, contentIds []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(contentIds))
	if len(contentIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		ContentID uint
		Total     int64
	}
	err := r.GetDB(ctx).Model(&entities.Like{}).
		Select("content_id, COUNT(*) AS total").
		Where("is_liked = ? AND content_id IN ?", true, contentIds).
		Group("content_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ContentID] = row.Total
	}
	return counts, nil
}

func (r *repo) LikedBy(ctx context.Context, userId uint, contentIds []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(contentIds))
	if len(contentIds) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.GetDB(ctx).Model(&entities.Like{}).
		Where("user_id = ? AND is_liked = ? AND content_id IN ?", userId, true, contentIds).
		Pluck("content_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *repo) ListWishlistContents(ctx context.Context, userId uint) ([]*entities.Content, error) {
	var contents []*entities.Content
	err := r.GetDB(ctx).Model(&entities.Content{}).
		Select("contents.*").
		Joins("JOIN wishlists ON wishlists.content_id = contents.id").
		Where("wishlists.user_id = ? AND wishlists.is_wished = ?", userId, true).
		Where("contents.publish = ?", constant.PublishPublic).
		Preload("Genre").
		Order("wishlists.created_at DESC").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *repo) FindWishlistById(ctx context.Context, userId, id uint) (*entities.Wishlist, error) {
	wishlist := &entities.Wishlist{}
	err := r.GetDB(ctx).Preload("Content").Preload("Content.Genre").
		First(wishlist, "id = ? AND user_id = ?", id, userId).Error
	if err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (r *repo) FindWishlist(ctx context.Context, userId, contentId uint) (*entities.Wishlist, error) {
	wishlist := &entities.Wishlist{}
	err := r.GetDB(ctx).First(wishlist, "user_id = ? AND content_id = ?", userId, contentId).Error
	if err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (r *repo) CreateWishlist(ctx context.Context, wishlist *entities.Wishlist) error {
	return r.GetDB(ctx).Omit("Content").Create(wishlist).Error
}

func (r *repo) SaveWishlist(ctx context.Context, wishlist *entities.Wishlist) error {
	return r.GetDB(ctx).Omit("Content").Save(wishlist).Error
}

func (r *repo) DeleteWishlist(ctx context.Context, id uint) error {
	return r.GetDB(ctx).Delete(&entities.Wishlist{}, "id = ?", id).Error
}
