package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewhq/drew/internal/container"
	handlers "github.com/drewhq/drew/internal/interface/http"
	"github.com/drewhq/drew/internal/interface/middleware"
)

// ActivityModule wires discovery routes. Listing and detail are public;
// management routes require auth. /events is a legacy alias kept for older
// clients.
type ActivityModule struct {
	Handler *handlers.ActivityHandler
}

func NewActivityModule(h *handlers.ActivityHandler) *ActivityModule {
	return &ActivityModule{Handler: h}
}

func (m *ActivityModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/activity", publicLimiter, m.Handler.List)
	rg.GET("/activity/:id", publicLimiter, m.Handler.Get)

	// legacy alias
	rg.GET("/events", publicLimiter, m.Handler.List)
	rg.GET("/events/:id", publicLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/activity", m.Handler.Create)
		auth.PUT("/activity/:id", m.Handler.Update)
		auth.POST("/activity/:id/images", m.Handler.UploadImage)
	}
}
