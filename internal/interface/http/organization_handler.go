package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/drewhq/drew/internal/application"
	"github.com/drewhq/drew/internal/interface/middleware"
	"github.com/drewhq/drew/pkg/response"
	"github.com/drewhq/drew/pkg/validation"
)

type OrganizationHandler struct {
	Svc    *app.OrganizationService
	Logger *logrus.Logger
}

func NewOrganizationHandler(svc *app.OrganizationService, logger *logrus.Logger) *OrganizationHandler {
	return &OrganizationHandler{Svc: svc, Logger: logger}
}

type organizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Website     string `json:"website" binding:"omitempty,url"`
}

type updateOrganizationRequest struct {
	Name        *string `json:"name"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"companySize"`
	Website     *string `json:"website" binding:"omitempty"`
}

// queryInt reads an integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// listMeta is the pagination block every list endpoint returns.
func listMeta(count, total, limit, offset int) gin.H {
	return gin.H{"count": count, "total": total, "limit": limit, "offset": offset}
}

// Create makes an organization and attaches it to the caller.
func (h *OrganizationHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	org, err := h.Svc.CreateFor(c.Request.Context(), uid, app.OrganizationInput{
		Name:        req.Name,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Website:     req.Website,
	})
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not create organization", nil)
		return
	}
	response.Success(c, http.StatusCreated, org, "organization created", nil)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	org, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "organization not found", nil)
		return
	}
	response.Success(c, http.StatusOK, org, "organization", nil)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req updateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	org, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), app.UpdateOrganizationInput{
		Name:        req.Name,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Website:     req.Website,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrOrganizationNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, app.ErrNoUpdateData):
			response.Error[any](c, http.StatusBadRequest, "No update data provided", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, org, "organization updated", nil)
}

func (h *OrganizationHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	items, total, err := h.Svc.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not list organizations", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "organizations", listMeta(len(items), total, limit, offset))
}
