package service

import (
	"catalog-service/constant"
	"catalog-service/dto"
	"catalog-service/entities"
	"catalog-service/repository"
	"context"
	"errors"
	"github.com/rs/zerolog"
	"strconv"
	"time"
)

type TrackingService interface {
	RecordProgress(ctx context.Context, identity Identity, req dto.RecordProgressRequest) (*entities.ProgressEvent, error)
	GetDuration(ctx context.Context, identity Identity, userId, contentId uint) (dto.DurationResult, error)
	RecomputeDuration(ctx context.Context, identity Identity, userId, contentId uint) (int64, error)
	DeleteProgress(ctx context.Context, identity Identity, userId, contentId uint) error
	Compact(ctx context.Context, before time.Time) (int64, error)
}

type trackingService struct {
	repo repository.Repository
}

func NewTrackingService(repo repository.Repository) TrackingService {
	return &trackingService{repo: repo}
}

// RecordProgress appends one progress event and then refreshes the derived
// values: the user's distinct device count and the resume duration for the
// user and content pair. The event stays persisted if either refresh fails.
func (s *trackingService) RecordProgress(ctx context.Context, identity Identity, req dto.RecordProgressRequest) (*entities.ProgressEvent, error) {
	if err := validateProgress(req); err != nil {
		return nil, err
	}
	if err := s.authorize(identity, req.UserID); err != nil {
		return nil, err
	}
	if err := s.ensurePair(ctx, req.UserID, req.ContentID); err != nil {
		return nil, err
	}

	event := &entities.ProgressEvent{
		UserID:      req.UserID,
		DeviceID:    *req.DeviceID,
		ContentID:   req.ContentID,
		Status:      constant.ProgressStatus(req.Status),
		ElapsedTime: req.ElapsedTime,
	}
	if err := s.repo.CreateProgressEvent(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", req.UserID).Msg("failed to store progress event")
		return nil, persistence(err)
	}

	if err := s.refreshDeviceCount(ctx, event.UserID); err != nil {
		return nil, err
	}
	if err := s.refreshDeviceDuration(ctx, event); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Uint("user_id", event.UserID).
		Int64("device_id", event.DeviceID).
		Uint("content_id", event.ContentID).
		Str("elapsed_time", event.ElapsedTime).
		Msg("progress recorded")
	return event, nil
}

func (s *trackingService) refreshDeviceCount(ctx context.Context, userId uint) error {
	count, err := s.repo.CountDistinctDevices(ctx, userId)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", userId).Msg("failed to count devices")
		return persistence(err)
	}
	if err := s.repo.UpdateUserDeviceCount(ctx, userId, count); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", userId).Msg("failed to update device count")
		return persistence(err)
	}
	return nil
}

// refreshDeviceDuration takes the max over the event's own device only and
// folds it into the pair's row without ever lowering it.
func (s *trackingService) refreshDeviceDuration(ctx context.Context, event *entities.ProgressEvent) error {
	deviceId := event.DeviceID
	stats, err := s.repo.MaxElapsed(ctx, repository.ProgressFilter{
		UserId:    event.UserID,
		ContentId: event.ContentID,
		DeviceId:  &deviceId,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", event.UserID).Msg("failed to compute device max elapsed")
		return persistence(err)
	}
	if err := s.repo.UpsertDurationMax(ctx, event.UserID, event.ContentID, stats.MaxElapsed); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", event.UserID).Msg("failed to upsert duration")
		return persistence(err)
	}
	return nil
}

func (s *trackingService) GetDuration(ctx context.Context, identity Identity, userId, contentId uint) (dto.DurationResult, error) {
	if err := s.authorize(identity, userId); err != nil {
		return dto.DurationResult{}, err
	}
	if err := s.ensurePair(ctx, userId, contentId); err != nil {
		return dto.DurationResult{}, err
	}

	row, err := s.repo.FindDeviceProgress(ctx, userId, contentId)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return dto.DurationResult{Duration: 0, Found: false}, nil
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", userId).Msg("failed to fetch duration")
		return dto.DurationResult{}, persistence(err)
	}
	return dto.DurationResult{Duration: row.Duration, Found: true}, nil
}

// RecomputeDuration reconciles the pair's row with the maximum elapsed time
// over every device. A pair without history has nothing to reconcile and no
// row is written.
func (s *trackingService) RecomputeDuration(ctx context.Context, identity Identity, userId, contentId uint) (int64, error) {
	if err := s.authorize(identity, userId); err != nil {
		return 0, err
	}
	if err := s.ensurePair(ctx, userId, contentId); err != nil {
		return 0, err
	}

	stats, err := s.repo.MaxElapsed(ctx, repository.ProgressFilter{UserId: userId, ContentId: contentId})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", userId).Msg("failed to compute max elapsed")
		return 0, persistence(err)
	}
	if stats.Events == 0 {
		return 0, nil
	}

	if err := s.repo.UpsertDuration(ctx, userId, contentId, stats.MaxElapsed); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", userId).Msg("failed to update duration")
		return 0, persistence(err)
	}
	return stats.MaxElapsed, nil
}

// DeleteProgress removes the pair's row. Raw events are kept, so a later
// recompute restores the duration.
func (s *trackingService) DeleteProgress(ctx context.Context, identity Identity, userId, contentId uint) error {
	if err := s.authorize(identity, userId); err != nil {
		return err
	}
	if err := s.ensurePair(ctx, userId, contentId); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteDeviceProgress(ctx, userId, contentId)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", userId).Msg("failed to delete duration")
		return persistence(err)
	}
	if deleted == 0 {
		return notFound("no duration record for user %d and content %d", userId, contentId)
	}
	return nil
}

func (s *trackingService) Compact(ctx context.Context, before time.Time) (int64, error) {
	removed, err := s.repo.CompactProgressEvents(ctx, before)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Time("before", before).Msg("failed to compact progress events")
		return 0, persistence(err)
	}
	zerolog.Ctx(ctx).Info().Int64("removed", removed).Time("before", before).Msg("progress events compacted")
	return removed, nil
}

func (s *trackingService) authorize(identity Identity, userId uint) error {
	if !identity.Can(constant.CapTrackProgress) {
		return ErrForbidden
	}
	if !identity.actsFor(userId) {
		return ErrForbidden
	}
	return nil
}

func (s *trackingService) ensurePair(ctx context.Context, userId, contentId uint) error {
	ok, err := s.repo.UserExists(ctx, userId)
	if err != nil {
		return persistence(err)
	}
	if !ok {
		return notFound("user %d", userId)
	}
	ok, err = s.repo.ContentExists(ctx, contentId)
	if err != nil {
		return persistence(err)
	}
	if !ok {
		return notFound("content %d", contentId)
	}
	return nil
}

func validateProgress(req dto.RecordProgressRequest) error {
	verr := &ValidationError{}
	if req.UserID == 0 {
		verr.Add("user_id", "The user id field is required.")
	}
	if req.DeviceID == nil {
		verr.Add("device_id", "The device id field is required.")
	}
	if req.ContentID == 0 {
		verr.Add("content_id", "The content id field is required.")
	}
	if !constant.ProgressStatus(req.Status).Valid() {
		verr.Add("status", "The selected status is invalid.")
	}
	if req.ElapsedTime == "" {
		verr.Add("elapsed_time", "The elapsed time field is required.")
	} else if _, err := strconv.ParseUint(req.ElapsedTime, 10, 63); err != nil {
		verr.Add("elapsed_time", "The elapsed time must be a whole number of seconds.")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
