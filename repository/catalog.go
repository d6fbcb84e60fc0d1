package repository

import (
	"catalog-service/constant"
	"catalog-service/entities"
	"context"
	"gorm.io/gorm"
	"strings"
	"time"
)

type CatalogRepository interface {
	ListGenres(ctx context.Context) ([]*entities.Genre, error)
	GenreNames(ctx context.Context) ([]string, error)
	FindGenreById(ctx context.Context, id uint) (*entities.Genre, error)
	GenreExists(ctx context.Context, id uint) (bool, error)
	CreateGenre(ctx context.Context, genre *entities.Genre) error
	SaveGenre(ctx context.Context, genre *entities.Genre) error
	DeleteGenre(ctx context.Context, id uint) (int64, error)

	CreateContent(ctx context.Context, content *entities.Content) error
	FindContentById(ctx context.Context, id uint) (*entities.Content, error)
	ContentExists(ctx context.Context, id uint) (bool, error)
	SaveContent(ctx context.Context, content *entities.Content) error
	DeleteContent(ctx context.Context, id uint) (int64, error)
	ListContents(ctx context.Context, query ContentQuery) ([]*entities.Content, int64, error)
	IncrementViewCount(ctx context.Context, id uint) error
	UpdateContentVideo(ctx context.Context, id uint, url string) error
}

type ContentSort string

const (
	SortLatest     ContentSort = "latest"
	SortPopularity ContentSort = "popularity"
	SortSchedule   ContentSort = "schedule"
)

type ContentQuery struct {
	Page
	GenreName      string
	Title          string
	Search         string
	SortBy         ContentSort
	ScheduledAfter *time.Time
	PublicOnly     bool
}

func (r *repo) ListGenres(ctx context.Context) ([]*entities.Genre, error) {
	var genres []*entities.Genre
	err := r.GetDB(ctx).Order("name ASC").Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *repo) GenreNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.GetDB(ctx).Model(&entities.Genre{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

func (r *repo) FindGenreById(ctx context.Context, id uint) (*entities.Genre, error) {
	genre := &entities.Genre{}
	err := r.GetDB(ctx).First(genre, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func (r *repo) GenreExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.GetDB(ctx).Model(&entities.Genre{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repo) CreateGenre(ctx context.Context, genre *entities.Genre) error {
	return r.GetDB(ctx).Create(genre).Error
}

func (r *repo) SaveGenre(ctx context.Context, genre *entities.Genre) error {
	return r.GetDB(ctx).Save(genre).Error
}

func (r *repo) DeleteGenre(ctx context.Context, id uint) (int64, error) {
	res := r.GetDB(ctx).Delete(&entities.Genre{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repo) CreateContent(ctx context.Context, content *entities.Content) error {
	return r.GetDB(ctx).Create(content).Error
}

func (r *repo) FindContentById(ctx context.Context, id uint) (*entities.Content, error) {
	content := &entities.Content{}
	err := r.GetDB(ctx).Preload("Genre").First(content, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (r *repo) ContentExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.GetDB(ctx).Model(&entities.Content{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repo) SaveContent(ctx context.Context, content *entities.Content) error {
	return r.GetDB(ctx).Omit("Genre").Save(content).Error
}

func (r *repo) DeleteContent(ctx context.Context, id uint) (int64, error) {
	res := r.GetDB(ctx).Delete(&entities.Content{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repo) contentScope(ctx context.Context, query ContentQuery) *gorm.DB {
	q := r.GetDB(ctx).Model(&entities.Content{})
	if query.GenreName != "" {
		q = q.Joins("JOIN genres ON genres.id = contents.genre_id").
			Where("LOWER(genres.name) LIKE ?", like(query.GenreName))
	}
	if query.Title != "" {
		q = q.Where("LOWER(contents.title) LIKE ?", like(query.Title))
	}
	if query.Search != "" {
		q = q.Where("(LOWER(contents.title) LIKE ? OR LOWER(contents.description) LIKE ?)", like(query.Search), like(query.Search))
	}
	if query.ScheduledAfter != nil {
		q = q.Where("contents.schedule >= ?", *query.ScheduledAfter)
	}
	if query.PublicOnly {
		q = q.Where("contents.publish = ?", constant.PublishPublic)
	}
	return q
}

func (r *repo) ListContents(ctx context.Context, query ContentQuery) ([]*entities.Content, int64, error) {
	var total int64
	if err := r.contentScope(ctx, query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.contentScope(ctx, query).Select("contents.*").Preload("Genre")
	switch query.SortBy {
	case SortPopularity:
		q = q.Order("contents.view_count DESC").Order("contents.id DESC")
	case SortSchedule:
		q = q.Order("contents.schedule ASC").Order("contents.id ASC")
	default:
		q = q.Order("contents.created_at DESC").Order("contents.id DESC")
	}

	var contents []*entities.Content
	err := q.Offset(query.Offset()).Limit(query.Limit()).Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

func (r *repo) IncrementViewCount(ctx context.Context, id uint) error {
	return r.GetDB(ctx).Model(&entities.Content{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *repo) UpdateContentVideo(ctx context.Context, id uint, url string) error {
	return r.GetDB(ctx).Model(&entities.Content{}).Where("id = ?", id).Update("video1", url).Error
}

func like(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
