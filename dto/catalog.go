package dto

import (
	"catalog-service/constant"
	"io"
	"time"
)

type GenreRequest struct {
	Name      string  `json:"name" form:"name" binding:"required,max=255"`
	Thumbnail *string `json:"thumbnail" form:"thumbnail" binding:"omitempty,max=500"`
}

// Upload is a file received with a request, opened lazily by the service.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type ContentInput struct {
	Title       string
	Description string
	Publish     constant.PublishState
	Schedule    *time.Time
	GenreID     uint
	Video       *Upload
	Image       *Upload
}

type ContentForm struct {
	Title       string     `form:"title" binding:"required"`
	Description string     `form:"description" binding:"required"`
	Publish     string     `form:"publish" binding:"required,oneof=public private schedule"`
	Schedule    *time.Time `form:"schedule" time_format:"2006-01-02T15:04:05Z07:00"`
	GenreID     uint       `form:"genre_id" binding:"required"`
}

type ContentListQuery struct {
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	PaginateCount int    `form:"paginate_count"`
	Genre         string `form:"genre"`
	Title         string `form:"title"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=popularity latest"`
	Q             string `form:"q"`
}

// Size returns the requested page size, preferring per_page over the older
// paginate_count parameter.
func (q ContentListQuery) Size() int {
	if q.PerPage > 0 {
		return q.PerPage
	}
	return q.PaginateCount
}

type ContentView struct {
	ID          uint                  `json:"id"`
	Video1      *string               `json:"video1"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Publish     constant.PublishState `json:"publish"`
	Schedule    *time.Time            `json:"schedule"`
	GenreID     uint                  `json:"genre_id"`
	GenreName   *string               `json:"genre_name"`
	Image       *string               `json:"image"`
	TotalView   int64                 `json:"total_view"`
	TotalLikes  int64                 `json:"total_likes"`
	IsLiked     *bool                 `json:"is_liked,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

type HomeResponse struct {
	Latest   []ContentView          `json:"latest_content"`
	Genres   []string               `json:"genres"`
	Popular  Paginated[ContentView] `json:"popular_contents"`
	Upcoming Paginated[ContentView] `json:"upcoming_contents"`
}

type LikeResult struct {
	IsLiked    bool  `json:"is_liked"`
	TotalLikes int64 `json:"total_likes"`
}

type WishlistRequest struct {
	ContentID uint `json:"content_id" binding:"required"`
}

type WishlistUpdateRequest struct {
	IsWished *bool `json:"isWished" binding:"required"`
}
