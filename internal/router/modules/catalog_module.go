package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewhq/drew/internal/container"
	handlers "github.com/drewhq/drew/internal/interface/http"
	"github.com/drewhq/drew/internal/interface/middleware"
)

// CatalogModule wires the read-only occasion and offering catalogs.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/occasion", rl, m.Handler.ListOccasions)
	rg.GET("/occasion/:id", rl, m.Handler.GetOccasion)
	rg.GET("/offering", rl, m.Handler.ListOfferings)
	rg.GET("/offering/:id", rl, m.Handler.GetOffering)
}
