package handler

import (
	"catalog-service/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

func (h *Handler) ListSubscriptions(c *gin.Context) {
	subscriptions, err := h.svc.Billing.ListSubscriptions(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to fetch subscriptions.", err)
		return
	}
	respond(c, http.StatusOK, "Subscriptions fetched successfully.", gin.H{"data": subscriptions})
}

func (h *Handler) GetSubscription(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	subscription, err := h.svc.Billing.GetSubscription(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Subscription not found.", err)
		return
	}
	respond(c, http.StatusOK, "Subscription fetched successfully.", gin.H{"data": subscription})
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	subscription, err := h.svc.Billing.CreateSubscription(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "Failed to create subscription.", err)
		return
	}
	respond(c, http.StatusCreated, "Subscription created successfully.", gin.H{"data": subscription})
}

func (h *Handler) UpdateSubscription(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var patch dto.SubscriptionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.failBinding(c, err)
		return
	}
	subscription, err := h.svc.Billing.UpdateSubscription(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, "Failed to update subscription.", err)
		return
	}
	respond(c, http.StatusOK, "Subscription updated successfully.", gin.H{"data": subscription})
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Billing.DeleteSubscription(c.Request.Context(), id); err != nil {
		h.fail(c, "Failed to delete subscription.", err)
		return
	}
	respond(c, http.StatusOK, "Subscription deleted successfully.", nil)
}

func (h *Handler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)
	res, err := h.svc.Billing.Checkout(c.Request.Context(), identity, req)
	if err != nil {
		h.fail(c, "Payment failed.", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
