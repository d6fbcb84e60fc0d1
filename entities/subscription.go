package entities

import (
	"gorm.io/datatypes"
	"time"
)

type Subscription struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	PlanName    string                      `json:"plan_name" gorm:"type:varchar(255);not null"`
	Price       float64                     `json:"price" gorm:"not null"`
	Description *string                     `json:"description" gorm:"type:text"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
