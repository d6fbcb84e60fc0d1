package service

import (
	"catalog-service/constant"
	"catalog-service/dto"
	"catalog-service/entities"
	"catalog-service/pkg/rabbitmq"
	"catalog-service/repository"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"path/filepath"
	"strings"
	"time"
)

type ObjectStorage interface {
	Put(ctx context.Context, objectName string, upload dto.Upload) error
	Remove(ctx context.Context, objectName string) error
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

type CatalogService interface {
	ListGenres(ctx context.Context) ([]*entities.Genre, error)
	GetGenre(ctx context.Context, id uint) (*entities.Genre, error)
	CreateGenre(ctx context.Context, req dto.GenreRequest) (*entities.Genre, error)
	UpdateGenre(ctx context.Context, id uint, req dto.GenreRequest) (*entities.Genre, error)
	DeleteGenre(ctx context.Context, id uint) error

	ListContents(ctx context.Context, viewer *Identity, query repository.ContentQuery) (dto.Paginated[dto.ContentView], error)
	UpcomingContents(ctx context.Context, viewer *Identity, page repository.Page) (dto.Paginated[dto.ContentView], error)
	Home(ctx context.Context, viewer *Identity, page repository.Page) (dto.HomeResponse, error)
	ShowContent(ctx context.Context, identity Identity, id uint) (*entities.Content, error)
	CreateContent(ctx context.Context, input dto.ContentInput) (*entities.Content, error)
	UpdateContent(ctx context.Context, id uint, input dto.ContentInput) (*entities.Content, error)
	DeleteContent(ctx context.Context, id uint) error

	CompleteTranscode(ctx context.Context, message dto.TranscodeResultMessage) error
}

type catalogService struct {
	repo      repository.Repository
	storage   ObjectStorage
	publisher Publisher
	now       func() time.Time
}

func NewCatalogService(repo repository.Repository, storage ObjectStorage, publisher Publisher) CatalogService {
	return &catalogService{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *catalogService) ListGenres(ctx context.Context) ([]*entities.Genre, error) {
	genres, err := s.repo.ListGenres(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return genres, nil
}

func (s *catalogService) GetGenre(ctx context.Context, id uint) (*entities.Genre, error) {
	genre, err := s.repo.FindGenreById(ctx, id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, notFound("genre %d", id)
	}
	if err != nil {
		return nil, persistence(err)
	}
	return genre, nil
}

func (s *catalogService) CreateGenre(ctx context.Context, req dto.GenreRequest) (*entities.Genre, error) {
	genre := &entities.Genre{Name: strings.TrimSpace(req.Name), Thumbnail: req.Thumbnail}
	if err := s.repo.CreateGenre(ctx, genre); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create genre")
		return nil, persistence(err)
	}
	return genre, nil
}

func (s *catalogService) UpdateGenre(ctx context.Context, id uint, req dto.GenreRequest) (*entities.Genre, error) {
	genre, err := s.GetGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	genre.Name = strings.TrimSpace(req.Name)
	if req.Thumbnail != nil {
		genre.Thumbnail = req.Thumbnail
	}
	if err := s.repo.SaveGenre(ctx, genre); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("genre_id", id).Msg("failed to update genre")
		return nil, persistence(err)
	}
	return genre, nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteGenre(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("genre_id", id).Msg("failed to delete genre")
		return persistence(err)
	}
	if deleted == 0 {
		return notFound("genre %d", id)
	}
	return nil
}

func (s *catalogService) ListContents(ctx context.Context, viewer *Identity, query repository.ContentQuery) (dto.Paginated[dto.ContentView], error) {
	contents, total, err := s.repo.ListContents(ctx, query)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list contents")
		return dto.Paginated[dto.ContentView]{}, persistence(err)
	}
	views, err := contentViews(ctx, s.repo, contents, viewer)
	if err != nil {
		return dto.Paginated[dto.ContentView]{}, err
	}
	page := query.Page
	return dto.NewPaginated(views, max(page.Page, 1), page.Limit(), total), nil
}

// UpcomingContents lists contents scheduled from tomorrow onwards, soonest
// first.
func (s *catalogService) UpcomingContents(ctx context.Context, viewer *Identity, page repository.Page) (dto.Paginated[dto.ContentView], error) {
	now := s.now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return s.ListContents(ctx, viewer, repository.ContentQuery{
		Page:           page,
		ScheduledAfter: &tomorrow,
		SortBy:         repository.SortSchedule,
	})
}

func (s *catalogService) Home(ctx context.Context, viewer *Identity, page repository.Page) (dto.HomeResponse, error) {
	latest, err := s.ListContents(ctx, viewer, repository.ContentQuery{Page: repository.Page{Page: 1, PerPage: 1}})
	if err != nil {
		return dto.HomeResponse{}, err
	}
	names, err := s.repo.GenreNames(ctx)
	if err != nil {
		return dto.HomeResponse{}, persistence(err)
	}
	popular, err := s.ListContents(ctx, viewer, repository.ContentQuery{Page: page, SortBy: repository.SortPopularity})
	if err != nil {
		return dto.HomeResponse{}, err
	}
	upcoming, err := s.UpcomingContents(ctx, viewer, page)
	if err != nil {
		return dto.HomeResponse{}, err
	}
	if names == nil {
		names = []string{}
	}
	return dto.HomeResponse{
		Latest:   latest.Data,
		Genres:   names,
		Popular:  popular,
		Upcoming: upcoming,
	}, nil
}

// ShowContent returns a content, counts the view and records it in the
// caller's watch history.
func (s *catalogService) ShowContent(ctx context.Context, identity Identity, id uint) (*entities.Content, error) {
	content, err := s.findContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", id).Msg("failed to increment view count")
		return nil, persistence(err)
	}
	content.ViewCount++
	if identity.UserID != 0 {
		if err := s.repo.TouchHistory(ctx, identity.UserID, id); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", id).Msg("failed to record history")
			return nil, persistence(err)
		}
	}
	return content, nil
}

func (s *catalogService) findContent(ctx context.Context, id uint) (*entities.Content, error) {
	content, err := s.repo.FindContentById(ctx, id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, notFound("content %d", id)
	}
	if err != nil {
		return nil, persistence(err)
	}
	return content, nil
}

func (s *catalogService) validateContent(ctx context.Context, input dto.ContentInput) error {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		verr.Add("title", "The title field is required.")
	}
	if strings.TrimSpace(input.Description) == "" {
		verr.Add("description", "The description field is required.")
	}
	switch input.Publish {
	case constant.PublishPublic, constant.PublishPrivate:
	case constant.PublishSchedule:
		if input.Schedule == nil || input.Schedule.IsZero() {
			verr.Add("schedule", "The schedule field is required when publish is schedule.")
		}
	default:
		verr.Add("publish", "The selected publish is invalid.")
	}
	if input.GenreID == 0 {
		verr.Add("genre_id", "The genre id field is required.")
	} else {
		ok, err := s.repo.GenreExists(ctx, input.GenreID)
		if err != nil {
			return persistence(err)
		}
		if !ok {
			verr.Add("genre_id", "The selected genre id is invalid.")
		}
	}
	if input.Image != nil && !strings.HasPrefix(input.Image.ContentType, "image/") {
		verr.Add("image", "The image must be an image.")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func (s *catalogService) CreateContent(ctx context.Context, input dto.ContentInput) (*entities.Content, error) {
	if err := s.validateContent(ctx, input); err != nil {
		return nil, err
	}

	content := &entities.Content{
		Title:       input.Title,
		Description: input.Description,
		Publish:     input.Publish,
		Schedule:    s.schedule(input),
		GenreID:     input.GenreID,
	}
	if err := s.applyUploads(ctx, content, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateContent(ctx, content); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to store content")
		return nil, persistence(err)
	}
	if input.Video != nil {
		s.dispatchTranscode(ctx, content)
	}

	zerolog.Ctx(ctx).Info().Uint("content_id", content.ID).Msg("content created")
	return content, nil
}

func (s *catalogService) UpdateContent(ctx context.Context, id uint, input dto.ContentInput) (*entities.Content, error) {
	content, err := s.findContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateContent(ctx, input); err != nil {
		return nil, err
	}

	oldVideo, oldImage := content.Video1, content.Image
	content.Title = input.Title
	content.Description = input.Description
	content.Publish = input.Publish
	content.Schedule = s.schedule(input)
	content.GenreID = input.GenreID
	content.Genre = nil
	if err := s.applyUploads(ctx, content, input); err != nil {
		return nil, err
	}
	if err := s.repo.SaveContent(ctx, content); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", id).Msg("failed to update content")
		return nil, persistence(err)
	}

	if input.Video != nil {
		s.removeObject(ctx, oldVideo)
		s.dispatchTranscode(ctx, content)
	}
	if input.Image != nil {
		s.removeObject(ctx, oldImage)
	}
	return content, nil
}

func (s *catalogService) DeleteContent(ctx context.Context, id uint) error {
	content, err := s.findContent(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.DeleteContent(ctx, id); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", id).Msg("failed to delete content")
		return persistence(err)
	}
	s.removeObject(ctx, content.Video1)
	s.removeObject(ctx, content.Image)
	return nil
}

// schedule keeps the requested date only for scheduled contents; everything
// else is considered released now.
func (s *catalogService) schedule(input dto.ContentInput) *time.Time {
	if input.Publish == constant.PublishSchedule && input.Schedule != nil {
		return input.Schedule
	}
	now := s.now()
	return &now
}

func (s *catalogService) applyUploads(ctx context.Context, content *entities.Content, input dto.ContentInput) error {
	if input.Video != nil {
		name, err := s.upload(ctx, "videos", *input.Video)
		if err != nil {
			return err
		}
		content.Video1 = &name
	}
	if input.Image != nil {
		name, err := s.upload(ctx, "images", *input.Image)
		if err != nil {
			return err
		}
		content.Image = &name
	}
	return nil
}

func (s *catalogService) upload(ctx context.Context, prefix string, upload dto.Upload) (string, error) {
	objectName := filepath.ToSlash(filepath.Join(prefix, uuid.NewString(), filepath.Base(upload.Name)))
	if err := s.storage.Put(ctx, objectName, upload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("object", objectName).Msg("failed to upload file")
		return "", fmt.Errorf("%w: upload %s: %w", ErrUnavailable, prefix, err)
	}
	return objectName, nil
}

func (s *catalogService) removeObject(ctx context.Context, objectName *string) {
	if objectName == nil || *objectName == "" {
		return
	}
	if err := s.storage.Remove(ctx, *objectName); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("object", *objectName).Msg("failed to remove object")
	}
}

// dispatchTranscode records a pending job and asks the transcode worker to
// pick it up. A failed publish leaves the job pending for a later retry.
func (s *catalogService) dispatchTranscode(ctx context.Context, content *entities.Content) {
	job := &entities.Job{
		ID:         uuid.New(),
		EntityId:   content.ID,
		EntityType: constant.JobEntityContent,
		Status:     constant.JobStatusPending,
		JobType:    constant.JobTypeTranscoder,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("content_id", content.ID).Msg("failed to create transcode job")
		return
	}

	message := dto.JobMessage{
		JobId:      job.ID,
		ObjectPath: *content.Video1,
		FileName:   filepath.Base(*content.Video1),
	}
	if err := s.publisher.Publish(ctx, rabbitmq.TranscodeRequestKey, message); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to publish transcode job")
		return
	}
	zerolog.Ctx(ctx).Info().Str("job_id", job.ID.String()).Uint("content_id", content.ID).Msg("transcode job published")
}

func (s *catalogService) CompleteTranscode(ctx context.Context, message dto.TranscodeResultMessage) error {
	if message.JobId == uuid.Nil {
		return errors.Join(ErrNonRetryable, errors.New("missing job id"))
	}

	job, err := s.repo.FindJobById(ctx, message.JobId)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return errors.Join(ErrNonRetryable, fmt.Errorf("job %s not found", message.JobId))
	}
	if err != nil {
		return persistence(err)
	}
	if job.Status == constant.JobStatusCompleted || job.Status == constant.JobStatusFailed {
		zerolog.Ctx(ctx).Info().Str("job_id", job.ID.String()).Str("status", string(job.Status)).Msg("job already finished")
		return nil
	}

	if constant.JobStatus(message.Status) != constant.JobStatusCompleted {
		zerolog.Ctx(ctx).Warn().Str("job_id", job.ID.String()).Str("error", message.Error).Msg("transcode failed")
		if err := s.repo.UpdateStatusJob(ctx, constant.JobStatusFailed, job.ID); err != nil {
			return persistence(err)
		}
		return nil
	}
	if message.MasterPlaylist == "" {
		return errors.Join(ErrNonRetryable, fmt.Errorf("job %s completed without a playlist", job.ID))
	}

	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateContentVideo(ctx, job.EntityId, message.MasterPlaylist); err != nil {
			return err
		}
		return s.repo.UpdateStatusJob(ctx, constant.JobStatusCompleted, job.ID)
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to complete transcode job")
		return persistence(err)
	}

	zerolog.Ctx(ctx).Info().Str("job_id", job.ID.String()).Uint("content_id", job.EntityId).Msg("transcode job completed")
	return nil
}
