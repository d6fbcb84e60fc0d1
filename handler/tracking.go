package handler

import (
	"catalog-service/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

func (h *Handler) RecordProgress(c *gin.Context) {
	var req dto.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)

	event, err := h.svc.Tracking.RecordProgress(c.Request.Context(), identity, req)
	if err != nil {
		h.fail(c, "Failed to store video tracking.", err)
		return
	}
	c.JSON(http.StatusCreated, dto.RecordProgressResponse{
		Success: true,
		Message: "Video tracking stored and user stats updated successfully.",
		Data:    event,
	})
}

func (h *Handler) GetDuration(c *gin.Context) {
	var path dto.ProgressPath
	if err := c.ShouldBindUri(&path); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)

	result, err := h.svc.Tracking.GetDuration(c.Request.Context(), identity, path.UserID, path.ContentID)
	if err != nil {
		h.fail(c, "Failed to fetch duration.", err)
		return
	}
	message := "Duration fetched successfully."
	if !result.Found {
		message = "No duration record found yet for this user and content."
	}
	respond(c, http.StatusOK, message, gin.H{"duration": result.Duration})
}

func (h *Handler) RecomputeDuration(c *gin.Context) {
	var req dto.RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)

	duration, err := h.svc.Tracking.RecomputeDuration(c.Request.Context(), identity, req.UserID, req.ContentID)
	if err != nil {
		h.fail(c, "Failed to update duration.", err)
		return
	}
	respond(c, http.StatusOK, "Duration updated successfully.", gin.H{"duration": duration})
}

func (h *Handler) DeleteProgress(c *gin.Context) {
	var path dto.ProgressPath
	if err := c.ShouldBindUri(&path); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)

	if err := h.svc.Tracking.DeleteProgress(c.Request.Context(), identity, path.UserID, path.ContentID); err != nil {
		h.fail(c, "Failed to delete duration.", err)
		return
	}
	respond(c, http.StatusOK, "Duration record deleted successfully.", nil)
}
