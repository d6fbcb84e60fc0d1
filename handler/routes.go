package handler

import (
	"catalog-service/constant"
	"catalog-service/service"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc        *service.Service
	production bool
}

func New(svc *service.Service, production bool) *Handler {
	return &Handler{svc: svc, production: production}
}

// Routes mounts every API route under /api.
func (h *Handler) Routes(r gin.IRouter) {
	api := r.Group("/api")

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/password/email", h.SendResetOTP)
	api.POST("/password/verify-otp", h.VerifyResetOTP)
	api.POST("/password/reset", h.ResetPassword)

	public := api.Group("", h.OptionalAuth())
	public.GET("/home", h.Home)
	public.GET("/search", h.Search)
	public.GET("/genres", h.ListGenres)
	public.GET("/contents", h.ListContents)
	public.GET("/allcontents", h.AllContents)
	public.GET("/upcoming-content", h.UpcomingContents)
	public.GET("/subscriptions", h.ListSubscriptions)

	authed := api.Group("", h.RequireAuth())
	authed.GET("/me", h.Me)
	authed.POST("/logout", h.Logout)

	tracking := authed.Group("/video-tracking", h.RequireCapability(constant.CapTrackProgress))
	tracking.POST("", h.RecordProgress)
	tracking.PUT("", h.RecomputeDuration)
	tracking.GET("/:user_id/:content_id", h.GetDuration)
	tracking.DELETE("/:user_id/:content_id", h.DeleteProgress)

	catalog := authed.Group("", h.RequireCapability(constant.CapManageCatalog))
	catalog.POST("/contents", h.CreateContent)
	catalog.PUT("/contents/:id", h.UpdateContent)
	catalog.DELETE("/contents/:id", h.DeleteContent)
	catalog.POST("/genres", h.CreateGenre)
	catalog.GET("/genres/:id", h.GetGenre)
	catalog.PUT("/genres/:id", h.UpdateGenre)
	catalog.DELETE("/genres/:id", h.DeleteGenre)

	plans := authed.Group("/subscriptions", h.RequireCapability(constant.CapManageSubscriptions))
	plans.POST("", h.CreateSubscription)
	plans.GET("/:id", h.GetSubscription)
	plans.PUT("/:id", h.UpdateSubscription)
	plans.DELETE("/:id", h.DeleteSubscription)

	settings := authed.Group("/settings", h.RequireCapability(constant.CapManageSettings))
	settings.PUT("/password", h.ChangePassword)
	settings.POST("/info", h.UpdateProfile)
	settings.GET("/info", h.Profile)

	engage := authed.Group("", h.RequireCapability(constant.CapEngage))
	engage.POST("/updateInfo", h.UpdateProfile)
	engage.GET("/updateInfo", h.Profile)
	engage.GET("/contents/history", h.History)
	engage.GET("/contents/:id", h.ShowContent)
	engage.PUT("/contents/:id/like", h.ToggleLike)
	engage.GET("/wishlist", h.Wishlist)
	engage.POST("/wishlist", h.AddToWishlist)
	engage.GET("/wishlist/:id", h.GetWishlist)
	engage.PUT("/wishlist/:id", h.SetWished)
	engage.DELETE("/wishlist/:id", h.RemoveFromWishlist)

	authed.POST("/checkout", h.RequireCapability(constant.CapCheckout), h.Checkout)
}
