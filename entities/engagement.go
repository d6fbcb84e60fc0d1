package entities

import "time"

type History struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uq_histories_user_content,priority:1"`
	ContentID uint      `json:"content_id" gorm:"not null;uniqueIndex:uq_histories_user_content,priority:2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (History) TableName() string {
	return "histories"
}

type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uq_likes_user_content,priority:1"`
	ContentID uint      `json:"content_id" gorm:"not null;uniqueIndex:uq_likes_user_content,priority:2;index"`
	IsLiked   bool      `json:"is_liked" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Like) TableName() string {
	return "likes"
}

type Wishlist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uq_wishlists_user_content,priority:1"`
	ContentID uint      `json:"content_id" gorm:"not null;uniqueIndex:uq_wishlists_user_content,priority:2"`
	Content   *Content  `json:"content,omitempty"`
	IsWished  bool      `json:"isWished" gorm:"column:is_wished;not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}
