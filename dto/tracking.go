package dto

import "catalog-service/entities"

type RecordProgressRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	DeviceID    *int64 `json:"device_id" binding:"required"`
	ContentID   uint   `json:"content_id" binding:"required"`
	Status      string `json:"status" binding:"required,oneof='completed' 'not completed'"`
	ElapsedTime string `json:"elapsed_time" binding:"required,number"`
}

type RecomputeRequest struct {
	UserID    uint `json:"user_id" binding:"required"`
	ContentID uint `json:"content_id" binding:"required"`
}

type ProgressPath struct {
	UserID    uint `uri:"user_id" binding:"required"`
	ContentID uint `uri:"content_id" binding:"required"`
}

// DurationResult is the resume position for a user and content pair. Found is
// false for a pair that has never been watched.
type DurationResult struct {
	Duration int64 `json:"duration"`
	Found    bool  `json:"found"`
}

type RecordProgressResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    *entities.ProgressEvent `json:"data"`
}
