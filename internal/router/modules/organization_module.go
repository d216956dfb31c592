package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewhq/drew/internal/container"
	handlers "github.com/drewhq/drew/internal/interface/http"
	"github.com/drewhq/drew/internal/interface/middleware"
)

// OrganizationModule wires company management routes, all authenticated.
type OrganizationModule struct {
	Handler *handlers.OrganizationHandler
}

func NewOrganizationModule(h *handlers.OrganizationHandler) *OrganizationModule {
	return &OrganizationModule{Handler: h}
}

func (m *OrganizationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/organization", m.Handler.Create)
		auth.GET("/organization", m.Handler.List)
		auth.GET("/organization/:id", m.Handler.Get)
		auth.PUT("/organization/:id", m.Handler.Update)
	}
}
