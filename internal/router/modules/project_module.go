package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewhq/drew/internal/container"
	handlers "github.com/drewhq/drew/internal/interface/http"
	"github.com/drewhq/drew/internal/interface/middleware"
)

// ProjectModule wires planning projects and the recommendation agent.
// Everything here is scoped to the authenticated user.
type ProjectModule struct {
	Handler *handlers.ProjectHandler
}

func NewProjectModule(h *handlers.ProjectHandler) *ProjectModule {
	return &ProjectModule{Handler: h}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))

	// Agent turns call the model; keep them well under the general limit.
	chatLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID(), nil)
	{
		auth.POST("/project", m.Handler.Create)
		auth.GET("/project", m.Handler.List)
		auth.GET("/project/:id", m.Handler.Get)
		auth.PUT("/project/:id", m.Handler.Update)
		auth.POST("/project/:id/chat", chatLimiter, m.Handler.Chat)
		auth.GET("/project/:id/recommendation", m.Handler.ListRecommendations)
		auth.DELETE("/project/:id/recommendation/:recId", m.Handler.DeleteRecommendation)
	}
}
