package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/drewhq/drew/internal/application"
	"github.com/drewhq/drew/internal/interface/middleware"
	"github.com/drewhq/drew/pkg/response"
	"github.com/drewhq/drew/pkg/validation"
)

type ProjectHandler struct {
	Svc    *app.ProjectService
	Agent  *app.Recommender
	Logger *logrus.Logger
}

func NewProjectHandler(svc *app.ProjectService, agent *app.Recommender, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Agent: agent, Logger: logger}
}

type projectRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	OccasionIDs []string `json:"occasionIds"`
}

type updateProjectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	OccasionIDs *[]string `json:"occasionIds"`
}

type chatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), uid, app.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OccasionIDs: req.OccasionIDs,
	})
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not create project", nil)
		return
	}
	response.Success(c, http.StatusCreated, p, "project created", nil)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "project not found", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "project", nil)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), app.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OccasionIDs: req.OccasionIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrProjectNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, app.ErrNoUpdateData):
			response.Error[any](c, http.StatusBadRequest, "No update data provided", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, p, "project updated", nil)
}

func (h *ProjectHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	items, total, err := h.Svc.ListByUser(c.Request.Context(), uid, limit, offset)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not list projects", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "projects", listMeta(len(items), total, limit, offset))
}

// Chat runs one agent turn. Model failures degrade inside the agent, so the
// only error surfaced here is project access.
func (h *ProjectHandler) Chat(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	reply, err := h.Agent.Chat(c.Request.Context(), uid, c.Param("id"), req.Prompt)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "project not found", nil)
		return
	}
	response.Success(c, http.StatusOK, reply, "agent reply", nil)
}

func (h *ProjectHandler) ListRecommendations(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	items, err := h.Svc.ListRecommendations(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "project not found", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "recommendations", nil)
}

func (h *ProjectHandler) DeleteRecommendation(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	err := h.Svc.DeleteRecommendation(c.Request.Context(), uid, c.Param("id"), c.Param("recId"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrProjectNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, app.ErrRecommendationNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "delete failed", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "recommendation deleted", nil)
}
