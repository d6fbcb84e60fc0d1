package entities

import (
	"catalog-service/constant"
	"time"
)

type Genre struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Thumbnail *string   `json:"thumbnail" gorm:"type:varchar(500)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

type Content struct {
	ID          uint                  `json:"id" gorm:"primaryKey"`
	Video1      *string               `json:"video1" gorm:"column:video1;type:varchar(500)"`
	Title       string                `json:"title" gorm:"type:text;not null"`
	Description string                `json:"description" gorm:"type:text;not null"`
	Publish     constant.PublishState `json:"publish" gorm:"type:varchar(20);not null;default:'private'"`
	Schedule    *time.Time            `json:"schedule"`
	GenreID     uint                  `json:"genre_id" gorm:"not null;index"`
	Genre       *Genre                `json:"genre,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Image       *string               `json:"image" gorm:"type:varchar(500)"`
	ViewCount   int64                 `json:"view_count" gorm:"not null;default:0"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}
