package repository

import (
	"catalog-service/entities"
	"context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

// elapsed_time is a string column; every comparison goes through this cast so
// that "90" < "100".
const elapsedSeconds = "CAST(elapsed_time AS BIGINT)"

type ProgressRepository interface {
	CreateProgressEvent(ctx context.Context, event *entities.ProgressEvent) error
	CountProgressEvents(ctx context.Context, userId, contentId uint) (int64, error)
	CountDistinctDevices(ctx context.Context, userId uint) (int64, error)
	MaxElapsed(ctx context.Context, filter ProgressFilter) (ElapsedStats, error)
	UpsertDurationMax(ctx context.Context, userId, contentId uint, duration int64) error
	UpsertDuration(ctx context.Context, userId, contentId uint, duration int64) error
	FindDeviceProgress(ctx context.Context, userId, contentId uint) (*entities.DeviceProgress, error)
	DeleteDeviceProgress(ctx context.Context, userId, contentId uint) (int64, error)
	CompactProgressEvents(ctx context.Context, before time.Time) (int64, error)
}

// ProgressFilter narrows MaxElapsed to one device when DeviceId is set.
type ProgressFilter struct {
	UserId    uint
	ContentId uint
	DeviceId  *int64
}

type ElapsedStats struct {
	Events     int64
	MaxElapsed int64
}

func (r *repo) CreateProgressEvent(ctx context.Context, event *entities.ProgressEvent) error {
	return r.GetDB(ctx).Create(event).Error
}

func (r *repo) CountProgressEvents(ctx context.Context, userId, contentId uint) (int64, error) {
	var n int64
	err := r.GetDB(ctx).Model(&entities.ProgressEvent{}).
		Where("user_id = ? AND content_id = ?", userId, contentId).
		Count(&n).Error
	return n, err
}

func (r *repo) CountDistinctDevices(ctx context.Context, userId uint) (int64, error) {
	var n int64
	err := r.GetDB(ctx).Model(&entities.ProgressEvent{}).
		Where("user_id = ?", userId).
		Distinct("device_id").
		Count(&n).Error
	return n, err
}

func (r *repo) MaxElapsed(ctx context.Context, filter ProgressFilter) (ElapsedStats, error) {
	var stats ElapsedStats
	q := r.GetDB(ctx).Model(&entities.ProgressEvent{}).
		Select("COUNT(*) AS events, COALESCE(MAX("+elapsedSeconds+"), 0) AS max_elapsed").
		Where("user_id = ? AND content_id = ?", filter.UserId, filter.ContentId)
	if filter.DeviceId != nil {
		q = q.Where("device_id = ?", *filter.DeviceId)
	}
	err := q.Scan(&stats).Error
	return stats, err
}

// UpsertDurationMax writes duration for the pair but never lowers a stored
// value. The comparison happens inside the single upsert statement.
func (r *repo) UpsertDurationMax(ctx context.Context, userId, contentId uint, duration int64) error {
	row := &entities.DeviceProgress{UserID: userId, ContentID: contentId, Duration: duration}
	return r.GetDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"duration":   gorm.Expr("CASE WHEN excluded.duration > devices.duration THEN excluded.duration ELSE devices.duration END"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(row).Error
}

func (r *repo) UpsertDuration(ctx context.Context, userId, contentId uint, duration int64) error {
	row := &entities.DeviceProgress{UserID: userId, ContentID: contentId, Duration: duration}
	return r.GetDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"duration", "updated_at"}),
	}).Create(row).Error
}

func (r *repo) FindDeviceProgress(ctx context.Context, userId, contentId uint) (*entities.DeviceProgress, error) {
	row := &entities.DeviceProgress{}
	err := r.GetDB(ctx).First(row, "user_id = ? AND content_id = ?", userId, contentId).Error
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (r *repo) DeleteDeviceProgress(ctx context.Context, userId, contentId uint) (int64, error) {
	res := r.GetDB(ctx).Where("user_id = ? AND content_id = ?", userId, contentId).Delete(&entities.DeviceProgress{})
	return res.RowsAffected, res.Error
}

// CompactProgressEvents drops events created before the cutoff, keeping the
// highest-elapsed row of every (user, device, content) triple so device
// counts and recomputed durations are unchanged.
func (r *repo) CompactProgressEvents(ctx context.Context, before time.Time) (int64, error) {
	res := r.GetDB(ctx).Exec(`
		DELETE FROM videos
		WHERE created_at < ?
		AND id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY user_id, device_id, content_id
					ORDER BY `+elapsedSeconds+` DESC, id DESC
				) AS rn
				FROM videos
			) ranked
			WHERE rn = 1
		)`, before)
	return res.RowsAffected, res.Error
}
