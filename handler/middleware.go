package handler

import (
	"catalog-service/constant"
	"catalog-service/service"
	"fmt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"net/http"
	"strings"
	"time"
)

const (
	RequestIDHeader = "X-Request-ID"
	identityKey     = "identity"
)

// RequestLogger tags every request with an id, puts a child logger carrying
// it on the request context and writes one access line when done.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestId := c.GetHeader(RequestIDHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestId)

		child := logger.With().Str("request_id", requestId).Logger()
		c.Request = c.Request.WithContext(child.WithContext(c.Request.Context()))

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		event := child.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = child.Error()
		case status >= http.StatusBadRequest:
			event = child.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("http request")
	}
}

func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			h.fail(c, "Unauthenticated.", fmt.Errorf("%w: missing bearer token", service.ErrUnauthorized))
			return
		}
		identity, err := h.svc.Auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			h.fail(c, "Unauthenticated.", err)
			return
		}
		h.attach(c, identity)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is sent and lets
// anonymous requests through otherwise.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if identity, err := h.svc.Auth.Authenticate(c.Request.Context(), tokenString); err == nil {
				h.attach(c, identity)
			}
		}
		c.Next()
	}
}

func (h *Handler) RequireCapability(capability constant.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			h.fail(c, "Unauthenticated.", service.ErrUnauthorized)
			return
		}
		if !identity.Can(capability) {
			h.fail(c, "Access denied.", fmt.Errorf("%w: role %s lacks %s", service.ErrForbidden, identity.Role, capability))
			return
		}
		c.Next()
	}
}

func (h *Handler) attach(c *gin.Context, identity service.Identity) {
	c.Set(identityKey, identity)
	logger := zerolog.Ctx(c.Request.Context()).With().Uint("user_id", identity.UserID).Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
}

func identityFrom(c *gin.Context) (service.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	identity, ok := v.(service.Identity)
	return identity, ok
}

// viewer returns the caller when known, for responses that are personalised
// only for signed in users.
func viewer(c *gin.Context) *service.Identity {
	identity, ok := identityFrom(c)
	if !ok {
		return nil
	}
	return &identity
}
