package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewhq/drew/internal/container"
	handlers "github.com/drewhq/drew/internal/interface/http"
	"github.com/drewhq/drew/internal/interface/middleware"
)

// AuthModule wires passwordless and OAuth sign-in plus logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Magic-link init is the most abusable route in the API; keep it tight.
	initLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	confirmLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/magic-link", initLimiter, m.Handler.MagicLinkInit)
	rg.POST("/auth/magic-link/confirm", confirmLimiter, m.Handler.MagicLinkConfirm)
	rg.GET("/auth/google", m.Handler.GoogleRedirect)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), container.GetJWT()))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
