package service

import (
	"catalog-service/constant"
	"catalog-service/dto"
	"catalog-service/entities"
	"catalog-service/pkg/rabbitmq"
	"catalog-service/repository"
	"catalog-service/repository/repotest"
	"context"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

type catalogFixture struct {
	repo      repository.Repository
	storage   *memoryStorage
	publisher *recordingPublisher
	svc       *catalogService
	genre     *entities.Genre
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	repo := repotest.Open(t)
	storage := newMemoryStorage()
	publisher := &recordingPublisher{}
	return catalogFixture{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		svc:       NewCatalogService(repo, storage, publisher).(*catalogService),
		genre:     repotest.Genre(t, repo, "Drama"),
	}
}

func (f catalogFixture) input(publish constant.PublishState) dto.ContentInput {
	return dto.ContentInput{
		Title:       "Night Train",
		Description: "A long ride",
		Publish:     publish,
		GenreID:     f.genre.ID,
	}
}

func (f catalogFixture) jobs(t *testing.T) []*entities.Job {
	t.Helper()
	var jobs []*entities.Job
	require.NoError(t, f.repo.GetDB(context.Background()).Find(&jobs).Error)
	return jobs
}

func TestCreateContentUploadsAndDispatchesTranscode(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	in := f.input(constant.PublishPublic)
	in.Video = upload("clip.mp4", "video/mp4", "video-bytes")
	in.Image = upload("poster.png", "image/png", "image-bytes")

	content, err := f.svc.CreateContent(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, content.Video1)
	require.NotNil(t, content.Image)
	assert.True(t, strings.HasPrefix(*content.Video1, "videos/"))
	assert.True(t, strings.HasSuffix(*content.Video1, "/clip.mp4"))
	assert.Equal(t, "video-bytes", f.storage.objects[*content.Video1])
	assert.Equal(t, "image-bytes", f.storage.objects[*content.Image])
	require.NotNil(t, content.Schedule)

	jobs := f.jobs(t)
	require.Len(t, jobs, 1)
	assert.Equal(t, content.ID, jobs[0].EntityId)
	assert.Equal(t, constant.JobEntityContent, jobs[0].EntityType)
	assert.Equal(t, constant.JobStatusPending, jobs[0].Status)
	assert.Equal(t, constant.JobTypeTranscoder, jobs[0].JobType)

	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, rabbitmq.TranscodeRequestKey, f.publisher.messages[0].routingKey)
	msg, ok := f.publisher.messages[0].message.(dto.JobMessage)
	require.True(t, ok)
	assert.Equal(t, jobs[0].ID, msg.JobId)
	assert.Equal(t, *content.Video1, msg.ObjectPath)
	assert.Equal(t, "clip.mp4", msg.FileName)
}

func TestCreateContentPublishFailureKeepsPendingJob(t *testing.T) {
	f := newCatalogFixture(t)
	f.publisher.err = errBoom

	in := f.input(constant.PublishPublic)
	in.Video = upload("clip.mp4", "video/mp4", "v")

	_, err := f.svc.CreateContent(context.Background(), in)
	require.NoError(t, err)

	jobs := f.jobs(t)
	require.Len(t, jobs, 1)
	assert.Equal(t, constant.JobStatusPending, jobs[0].Status)
}

func TestCreateContentValidation(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	in := f.input(constant.PublishSchedule)
	_, err := f.svc.CreateContent(ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "schedule")

	in = f.input(constant.PublishPublic)
	in.GenreID = 9999
	_, err = f.svc.CreateContent(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "genre_id")

	in = f.input(constant.PublishPublic)
	in.Image = upload("notes.txt", "text/plain", "x")
	_, err = f.svc.CreateContent(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "image")
	assert.Empty(t, f.storage.objects)
}

func TestScheduledContentKeepsDate(t *testing.T) {
	f := newCatalogFixture(t)

	at := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	in := f.input(constant.PublishSchedule)
	in.Schedule = &at

	content, err := f.svc.CreateContent(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, content.Schedule)
	assert.True(t, at.Equal(*content.Schedule))
}

func TestUpdateContentReplacesVideo(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	in := f.input(constant.PublishPublic)
	in.Video = upload("v1.mp4", "video/mp4", "one")
	content, err := f.svc.CreateContent(ctx, in)
	require.NoError(t, err)
	oldVideo := *content.Video1

	in = f.input(constant.PublishPrivate)
	in.Title = "Night Train (cut)"
	in.Video = upload("v2.mp4", "video/mp4", "two")
	updated, err := f.svc.UpdateContent(ctx, content.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Night Train (cut)", updated.Title)
	assert.Equal(t, constant.PublishPrivate, updated.Publish)
	assert.NotEqual(t, oldVideo, *updated.Video1)
	assert.Contains(t, f.storage.removed, oldVideo)
	assert.Len(t, f.jobs(t), 2)

	_, err = f.svc.UpdateContent(ctx, 9999, in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteContentRemovesObjects(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	in := f.input(constant.PublishPublic)
	in.Image = upload("poster.png", "image/png", "img")
	content, err := f.svc.CreateContent(ctx, in)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteContent(ctx, content.ID))
	assert.Empty(t, f.storage.objects)

	err = f.svc.DeleteContent(ctx, content.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTranscode(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	in := f.input(constant.PublishPublic)
	in.Video = upload("clip.mp4", "video/mp4", "v")
	content, err := f.svc.CreateContent(ctx, in)
	require.NoError(t, err)
	job := f.jobs(t)[0]

	err = f.svc.CompleteTranscode(ctx, dto.TranscodeResultMessage{
		JobId:          job.ID,
		Status:         string(constant.JobStatusCompleted),
		MasterPlaylist: "hls/clip/master.m3u8",
	})
	require.NoError(t, err)

	stored, err := f.repo.FindContentById(ctx, content.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Video1)
	assert.Equal(t, "hls/clip/master.m3u8", *stored.Video1)

	done, err := f.repo.FindJobById(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.JobStatusCompleted, done.Status)

	err = f.svc.CompleteTranscode(ctx, dto.TranscodeResultMessage{
		JobId:          job.ID,
		Status:         string(constant.JobStatusCompleted),
		MasterPlaylist: "other.m3u8",
	})
	require.NoError(t, err)
	stored, err = f.repo.FindContentById(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, "hls/clip/master.m3u8", *stored.Video1)
}

func TestCompleteTranscodeFailureAndUnknownJob(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	in := f.input(constant.PublishPublic)
	in.Video = upload("clip.mp4", "video/mp4", "v")
	_, err := f.svc.CreateContent(ctx, in)
	require.NoError(t, err)
	job := f.jobs(t)[0]

	require.NoError(t, f.svc.CompleteTranscode(ctx, dto.TranscodeResultMessage{
		JobId: job.ID, Status: string(constant.JobStatusFailed), Error: "ffmpeg exited 1",
	}))
	failed, err := f.repo.FindJobById(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.JobStatusFailed, failed.Status)

	err = f.svc.CompleteTranscode(ctx, dto.TranscodeResultMessage{JobId: uuid.New(), Status: "COMPLETED", MasterPlaylist: "x"})
	assert.ErrorIs(t, err, ErrNonRetryable)
}

func TestShowContentCountsViewAndHistory(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	user := repotest.User(t, f.repo, "viewer@example.com", constant.RoleSubscriber)
	content := repotest.Content(t, f.repo, f.genre, "Night Train", constant.PublishPublic)
	viewer := Identity{UserID: user.ID, Role: constant.RoleSubscriber}

	shown, err := f.svc.ShowContent(ctx, viewer, content.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), shown.ViewCount)
	_, err = f.svc.ShowContent(ctx, viewer, content.ID)
	require.NoError(t, err)

	stored, err := f.repo.FindContentById(ctx, content.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.ViewCount)

	history, total, err := f.repo.ListHistory(ctx, user.ID, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, content.ID, history[0].ID)

	_, err = f.svc.ShowContent(ctx, viewer, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListContentsPersonalisesLikes(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	content := repotest.Content(t, f.repo, f.genre, "Night Train", constant.PublishPublic)
	require.NoError(t, f.repo.CreateLike(ctx, &entities.Like{UserID: 7, ContentID: content.ID, IsLiked: true}))

	page, err := f.svc.ListContents(ctx, nil, repository.ContentQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Data[0].TotalLikes)
	assert.Nil(t, page.Data[0].IsLiked)
	require.NotNil(t, page.Data[0].GenreName)
	assert.Equal(t, "Drama", *page.Data[0].GenreName)

	page, err = f.svc.ListContents(ctx, &Identity{UserID: 7, Role: constant.RoleSubscriber}, repository.ContentQuery{})
	require.NoError(t, err)
	require.NotNil(t, page.Data[0].IsLiked)
	assert.True(t, *page.Data[0].IsLiked)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.LastPage)
}

func TestUpcomingContentsStartTomorrow(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	f.svc.now = func() time.Time { return now }

	for title, at := range map[string]time.Time{
		"tonight":  now.Add(3 * time.Hour),
		"tomorrow": now.Add(20 * time.Hour),
		"next":     now.Add(7 * 24 * time.Hour),
	} {
		c := repotest.Content(t, f.repo, f.genre, title, constant.PublishSchedule)
		c.Schedule = &at
		require.NoError(t, f.repo.SaveContent(ctx, c))
	}

	page, err := f.svc.UpcomingContents(ctx, nil, repository.Page{})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "tomorrow", page.Data[0].Title)
	assert.Equal(t, "next", page.Data[1].Title)
}

func TestGenreLifecycle(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	genre, err := f.svc.CreateGenre(ctx, dto.GenreRequest{Name: "  Comedy "})
	require.NoError(t, err)
	assert.Equal(t, "Comedy", genre.Name)

	genre, err = f.svc.UpdateGenre(ctx, genre.ID, dto.GenreRequest{Name: "Satire"})
	require.NoError(t, err)
	assert.Equal(t, "Satire", genre.Name)

	home, err := f.svc.Home(ctx, nil, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama", "Satire"}, home.Genres)

	require.NoError(t, f.svc.DeleteGenre(ctx, genre.ID))
	assert.ErrorIs(t, f.svc.DeleteGenre(ctx, genre.ID), ErrNotFound)
	_, err = f.svc.GetGenre(ctx, genre.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
