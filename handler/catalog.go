package handler

import (
	"catalog-service/constant"
	"catalog-service/dto"
	"catalog-service/repository"
	"catalog-service/service"
	"errors"
	"github.com/gin-gonic/gin"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.svc.Catalog.ListGenres(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to fetch genres.", err)
		return
	}
	respond(c, http.StatusOK, "Genres fetched successfully.", gin.H{"data": genres})
}

func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	genre, err := h.svc.Catalog.GetGenre(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Genre not found.", err)
		return
	}
	respond(c, http.StatusOK, "Genre fetched successfully.", gin.H{"data": genre})
}

func (h *Handler) CreateGenre(c *gin.Context) {
	var req dto.GenreRequest
	if err := c.ShouldBind(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	genre, err := h.svc.Catalog.CreateGenre(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "Failed to create genre.", err)
		return
	}
	respond(c, http.StatusCreated, "Genre created successfully.", gin.H{"data": genre})
}

func (h *Handler) UpdateGenre(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req dto.GenreRequest
	if err := c.ShouldBind(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	genre, err := h.svc.Catalog.UpdateGenre(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, "Failed to update genre.", err)
		return
	}
	respond(c, http.StatusOK, "Genre updated successfully.", gin.H{"data": genre})
}

func (h *Handler) DeleteGenre(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteGenre(c.Request.Context(), id); err != nil {
		h.fail(c, "Failed to delete genre.", err)
		return
	}
	respond(c, http.StatusOK, "Genre deleted successfully.", nil)
}

// ListContents hides unpublished contents from everyone but catalog managers.
func (h *Handler) ListContents(c *gin.Context) {
	query, ok := h.contentQuery(c)
	if !ok {
		return
	}
	h.listContents(c, repository.ContentQuery{Page: pageOf(query), PublicOnly: !h.canManage(c)})
}

func (h *Handler) AllContents(c *gin.Context) {
	query, ok := h.contentQuery(c)
	if !ok {
		return
	}
	sortBy := repository.SortLatest
	if query.SortBy == string(repository.SortPopularity) {
		sortBy = repository.SortPopularity
	}
	h.listContents(c, repository.ContentQuery{
		Page:       pageOf(query),
		GenreName:  query.Genre,
		Title:      query.Title,
		SortBy:     sortBy,
		PublicOnly: !h.canManage(c),
	})
}

func (h *Handler) Search(c *gin.Context) {
	query, ok := h.contentQuery(c)
	if !ok {
		return
	}
	if strings.TrimSpace(query.Q) == "" {
		h.fail(c, "Validation failed.", service.NewValidationError("q", "The q field is required."))
		return
	}
	h.listContents(c, repository.ContentQuery{Page: pageOf(query), Search: query.Q, PublicOnly: !h.canManage(c)})
}

func (h *Handler) listContents(c *gin.Context, query repository.ContentQuery) {
	page, err := h.svc.Catalog.ListContents(c.Request.Context(), viewer(c), query)
	if err != nil {
		h.fail(c, "Failed to fetch contents.", err)
		return
	}
	respond(c, http.StatusOK, "Contents fetched successfully.", gin.H{"data": page})
}

func (h *Handler) UpcomingContents(c *gin.Context) {
	query, ok := h.contentQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.Catalog.UpcomingContents(c.Request.Context(), viewer(c), pageOf(query))
	if err != nil {
		h.fail(c, "Failed to fetch upcoming contents.", err)
		return
	}
	respond(c, http.StatusOK, "Upcoming contents fetched successfully.", gin.H{"data": page})
}

func (h *Handler) Home(c *gin.Context) {
	query, ok := h.contentQuery(c)
	if !ok {
		return
	}
	home, err := h.svc.Catalog.Home(c.Request.Context(), viewer(c), pageOf(query))
	if err != nil {
		h.fail(c, "Failed to fetch home.", err)
		return
	}
	respond(c, http.StatusOK, "Home fetched successfully.", gin.H{"data": home})
}

func (h *Handler) ShowContent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	identity, _ := identityFrom(c)
	content, err := h.svc.Catalog.ShowContent(c.Request.Context(), identity, id)
	if err != nil {
		h.fail(c, "Content not found.", err)
		return
	}
	respond(c, http.StatusOK, "Content fetched successfully.", gin.H{"data": content})
}

func (h *Handler) CreateContent(c *gin.Context) {
	input, ok := h.contentInput(c)
	if !ok {
		return
	}
	content, err := h.svc.Catalog.CreateContent(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "Failed to create content.", err)
		return
	}
	respond(c, http.StatusCreated, "Content created successfully.", gin.H{"data": content})
}

func (h *Handler) UpdateContent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	input, ok := h.contentInput(c)
	if !ok {
		return
	}
	content, err := h.svc.Catalog.UpdateContent(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, "Failed to update content.", err)
		return
	}
	respond(c, http.StatusOK, "Content updated successfully.", gin.H{"data": content})
}

func (h *Handler) DeleteContent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteContent(c.Request.Context(), id); err != nil {
		h.fail(c, "Failed to delete content.", err)
		return
	}
	respond(c, http.StatusOK, "Content deleted successfully.", nil)
}

func pageOf(q dto.ContentListQuery) repository.Page {
	return repository.Page{Page: q.Page, PerPage: q.Size()}
}

func (h *Handler) contentQuery(c *gin.Context) (dto.ContentListQuery, bool) {
	var query dto.ContentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.failBinding(c, err)
		return dto.ContentListQuery{}, false
	}
	return query, true
}

func (h *Handler) contentInput(c *gin.Context) (dto.ContentInput, bool) {
	var form dto.ContentForm
	if err := c.ShouldBind(&form); err != nil {
		h.failBinding(c, err)
		return dto.ContentInput{}, false
	}
	input := dto.ContentInput{
		Title:       form.Title,
		Description: form.Description,
		Publish:     constant.PublishState(form.Publish),
		Schedule:    form.Schedule,
		GenreID:     form.GenreID,
	}

	var err error
	if input.Video, err = formUpload(c, "video1"); err != nil {
		h.failBinding(c, err)
		return dto.ContentInput{}, false
	}
	if input.Image, err = formUpload(c, "image"); err != nil {
		h.failBinding(c, err)
		return dto.ContentInput{}, false
	}
	return input, true
}

// formUpload returns nil when the field was not sent.
func formUpload(c *gin.Context, field string) (*dto.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.Upload{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open:        opener(fh),
	}, nil
}

func opener(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}

func (h *Handler) canManage(c *gin.Context) bool {
	identity, ok := identityFrom(c)
	return ok && identity.Can(constant.CapManageCatalog)
}

func (h *Handler) idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.fail(c, "Validation failed.", service.NewValidationError(name, "The "+name+" must be a positive integer."))
		return 0, false
	}
	return uint(id), true
}
