package entities

import (
	"catalog-service/constant"
	"github.com/google/uuid"
	"time"
)

// Job is shared with the transcode worker: it looks the row up by id when a
// request arrives and flips Status as it goes.
type Job struct {
	ID         uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	EntityId   uint               `json:"entity_id" gorm:"not null;index"`
	EntityType string             `json:"entity_type" gorm:"type:varchar(32);not null"`
	Status     constant.JobStatus `json:"status" gorm:"type:varchar(20);not null"`
	JobType    constant.JobType   `json:"job_type" gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
