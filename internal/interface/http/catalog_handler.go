package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/drewhq/drew/internal/application"
	"github.com/drewhq/drew/pkg/response"
)

type CatalogHandler struct {
	Svc *app.CatalogService
}

func NewCatalogHandler(svc *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

func (h *CatalogHandler) ListOccasions(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	items, total, err := h.Svc.ListOccasions(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not list occasions", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "occasions", listMeta(len(items), total, limit, offset))
}

func (h *CatalogHandler) GetOccasion(c *gin.Context) {
	o, err := h.Svc.GetOccasion(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "occasion not found", nil)
		return
	}
	response.Success(c, http.StatusOK, o, "occasion", nil)
}

func (h *CatalogHandler) ListOfferings(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	items, total, err := h.Svc.ListOfferings(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not list offerings", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "offerings", listMeta(len(items), total, limit, offset))
}

func (h *CatalogHandler) GetOffering(c *gin.Context) {
	o, err := h.Svc.GetOffering(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "offering not found", nil)
		return
	}
	response.Success(c, http.StatusOK, o, "offering", nil)
}
