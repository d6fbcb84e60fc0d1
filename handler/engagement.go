package handler

import (
	"catalog-service/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

func (h *Handler) ToggleLike(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	identity, _ := identityFrom(c)
	result, err := h.svc.Engagement.ToggleLike(c.Request.Context(), identity, id)
	if err != nil {
		h.fail(c, "Failed to update like.", err)
		return
	}
	message := "Content unliked."
	if result.IsLiked {
		message = "Content liked."
	}
	respond(c, http.StatusOK, message, gin.H{"is_liked": result.IsLiked, "total_likes": result.TotalLikes})
}

func (h *Handler) History(c *gin.Context) {
	query, ok := h.contentQuery(c)
	if !ok {
		return
	}
	identity, _ := identityFrom(c)
	page, err := h.svc.Engagement.History(c.Request.Context(), identity, pageOf(query))
	if err != nil {
		h.fail(c, "Failed to fetch history.", err)
		return
	}
	respond(c, http.StatusOK, "History fetched successfully.", gin.H{"data": page})
}

func (h *Handler) Wishlist(c *gin.Context) {
	identity, _ := identityFrom(c)
	contents, err := h.svc.Engagement.Wishlist(c.Request.Context(), identity)
	if err != nil {
		h.fail(c, "No wishlist items found.", err)
		return
	}
	respond(c, http.StatusOK, "Wishlist fetched successfully.", gin.H{"data": contents})
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	var req dto.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)
	wishlist, err := h.svc.Engagement.AddToWishlist(c.Request.Context(), identity, req.ContentID)
	if err != nil {
		h.fail(c, "Failed to add to wishlist.", err)
		return
	}
	respond(c, http.StatusCreated, "Added to wishlist.", gin.H{"data": wishlist})
}

func (h *Handler) GetWishlist(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	identity, _ := identityFrom(c)
	wishlist, err := h.svc.Engagement.GetWishlist(c.Request.Context(), identity, id)
	if err != nil {
		h.fail(c, "Wishlist item not found.", err)
		return
	}
	respond(c, http.StatusOK, "Wishlist item fetched successfully.", gin.H{"data": wishlist})
}

// SetWished takes a content id, not a wishlist id.
func (h *Handler) SetWished(c *gin.Context) {
	contentId, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req dto.WishlistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)
	wishlist, err := h.svc.Engagement.SetWished(c.Request.Context(), identity, contentId, *req.IsWished)
	if err != nil {
		h.fail(c, "Failed to update wishlist.", err)
		return
	}
	respond(c, http.StatusOK, "Wishlist updated.", gin.H{"data": wishlist})
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	contentId, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	identity, _ := identityFrom(c)
	if err := h.svc.Engagement.RemoveFromWishlist(c.Request.Context(), identity, contentId); err != nil {
		h.fail(c, "Failed to remove from wishlist.", err)
		return
	}
	respond(c, http.StatusOK, "Removed from wishlist.", nil)
}
