package entities

import (
	"catalog-service/constant"
	"time"
)

// ProgressEvent is one raw playback tick reported by a client. Rows are only
// ever inserted.
type ProgressEvent struct {
	ID          uint                    `json:"id" gorm:"primaryKey"`
	UserID      uint                    `json:"user_id" gorm:"not null;index:idx_videos_user_device_content,priority:1"`
	DeviceID    int64                   `json:"device_id" gorm:"not null;index:idx_videos_user_device_content,priority:2"`
	ContentID   uint                    `json:"content_id" gorm:"not null;index:idx_videos_user_device_content,priority:3"`
	Status      constant.ProgressStatus `json:"status" gorm:"type:varchar(20);not null"`
	ElapsedTime string                  `json:"elapsed_time" gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time               `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func (ProgressEvent) TableName() string {
	return "videos"
}

// DeviceProgress holds the resume position for a user and content pair. The
// table name is historical: there is one row per pair, not per device.
type DeviceProgress struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uq_devices_user_content,priority:1"`
	ContentID uint      `json:"content_id" gorm:"not null;uniqueIndex:uq_devices_user_content,priority:2"`
	Duration  int64     `json:"duration" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DeviceProgress) TableName() string {
	return "devices"
}
