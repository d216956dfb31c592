package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewhq/drew/internal/container"
	handlers "github.com/drewhq/drew/internal/interface/http"
	"github.com/drewhq/drew/internal/interface/middleware"
)

// UserModule wires account routes.
// Public: POST /api/user/register, POST /api/user/verify
// Protected: GET /api/user/me, PUT /api/user/:id, POST /api/onboarding
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/user/register", registerLimiter, m.Handler.Register)
	rg.POST("/user/verify", verifyLimiter, m.Handler.Verify)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/user/me", m.Handler.Me)
		auth.PUT("/user/:id", m.Handler.Update)
		auth.POST("/onboarding", m.Handler.Onboarding)
	}
}
