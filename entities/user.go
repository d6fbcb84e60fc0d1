package entities

import (
	"catalog-service/constant"
	"time"
)

type User struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	FirstName       string            `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName        *string           `json:"last_name" gorm:"type:varchar(255)"`
	Email           string            `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Username        *string           `json:"username" gorm:"type:varchar(255);uniqueIndex"`
	Role            constant.Role     `json:"roles" gorm:"column:roles;type:varchar(20);not null;default:'subscriber'"`
	Password        string            `json:"-" gorm:"type:varchar(255);not null"`
	Country         *string           `json:"country" gorm:"type:varchar(255)"`
	City            *string           `json:"city" gorm:"type:varchar(255)"`
	Phone           *string           `json:"phone" gorm:"type:varchar(255)"`
	PlanType        constant.PlanType `json:"plan_type" gorm:"type:varchar(20);not null;default:'none'"`
	DeviceCount     int               `json:"device_count" gorm:"not null;default:0"`
	EmailVerifiedAt *time.Time        `json:"email_verified_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
