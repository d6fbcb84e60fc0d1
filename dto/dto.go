package dto

import "github.com/google/uuid"

// JobMessage is published on transcoding.request for the transcode worker.
type JobMessage struct {
	JobId      uuid.UUID `json:"jobId"`
	ObjectPath string    `json:"objectPath"`
	FileName   string    `json:"fileName"`
}

// TranscodeResultMessage is consumed from transcoding.completed.
type TranscodeResultMessage struct {
	JobId          uuid.UUID `json:"jobId"`
	Status         string    `json:"status"`
	MasterPlaylist string    `json:"masterPlaylist"`
	Error          string    `json:"error,omitempty"`
}

type Paginated[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

func NewPaginated[T any](data []T, page, perPage int, total int64) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Paginated[T]{
		Data:        data,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
