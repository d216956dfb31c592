package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/drewhq/drew/internal/application"
	"github.com/drewhq/drew/internal/domain/entity"
	"github.com/drewhq/drew/pkg/response"
	"github.com/drewhq/drew/pkg/validation"
)

type ActivityHandler struct {
	Svc    *app.ActivityService
	Logger *logrus.Logger
}

func NewActivityHandler(svc *app.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{Svc: svc, Logger: logger}
}

type activityRequest struct {
	Title             string                    `json:"title" binding:"required"`
	ShortDescription  string                    `json:"shortDescription" binding:"required"`
	LongDescription   string                    `json:"longDescription"`
	Category          string                    `json:"category"`
	Location          string                    `json:"location"`
	City              string                    `json:"city"`
	State             string                    `json:"state"`
	Price             float64                   `json:"price" binding:"gte=0"`
	MinParticipants   int                       `json:"minParticipants" binding:"gte=0"`
	MaxParticipants   int                       `json:"maxParticipants" binding:"gte=0"`
	MinDuration       int                       `json:"minDuration"`
	MaxDuration       int                       `json:"maxDuration"`
	PreferredDuration int                       `json:"preferredDuration"`
	ThumbnailURL      string                    `json:"thumbnailUrl"`
	Images            []string                  `json:"images"`
	Host              *entity.HostInfo          `json:"host"`
	Itinerary         []entity.ItineraryItem    `json:"itinerary"`
	Offerings         []entity.OfferingLink     `json:"offerings"`
	PreRequisites     []entity.PreRequisiteLink `json:"preRequisites"`
	FreeCancellation  bool                      `json:"freeCancellation"`
}

func (r *activityRequest) toEntity() *entity.Activity {
	return &entity.Activity{
		Title:             r.Title,
		ShortDescription:  r.ShortDescription,
		LongDescription:   r.LongDescription,
		Category:          r.Category,
		Location:          r.Location,
		City:              r.City,
		State:             r.State,
		Price:             r.Price,
		MinParticipants:   r.MinParticipants,
		MaxParticipants:   r.MaxParticipants,
		MinDuration:       r.MinDuration,
		MaxDuration:       r.MaxDuration,
		PreferredDuration: r.PreferredDuration,
		ThumbnailURL:      r.ThumbnailURL,
		Images:            r.Images,
		Host:              r.Host,
		Itinerary:         r.Itinerary,
		Offerings:         r.Offerings,
		PreRequisites:     r.PreRequisites,
		FreeCancellation:  r.FreeCancellation,
	}
}

func filterFromQuery(c *gin.Context) entity.ActivityFilter {
	minPrice, _ := strconv.ParseFloat(c.Query("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)
	return entity.ActivityFilter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		Location:     c.Query("location"),
		City:         c.Query("city"),
		State:        c.Query("state"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Participants: queryInt(c, "participants", 0),
		Limit:        queryInt(c, "limit", 20),
		Offset:       queryInt(c, "offset", 0),
	}
}

// List serves discovery listings with text search and filters.
func (h *ActivityHandler) List(c *gin.Context) {
	f := filterFromQuery(c)
	items, total, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not list activities", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "activities", listMeta(len(items), total, f.Limit, f.Offset))
}

// Get serves one activity. ?expand=offerings includes offering and
// prerequisite details.
func (h *ActivityHandler) Get(c *gin.Context) {
	expand := strings.Contains(c.Query("expand"), "offerings")
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"), expand)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "activity not found", nil)
		return
	}
	response.Success(c, http.StatusOK, a, "activity", nil)
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), req.toEntity())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "could not create activity", nil)
		return
	}
	response.Success(c, http.StatusCreated, a, "activity created", nil)
}

func (h *ActivityHandler) Update(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a := req.toEntity()
	a.ID = c.Param("id")
	updated, err := h.Svc.Update(c.Request.Context(), a)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "activity not found", nil)
		return
	}
	response.Success(c, http.StatusOK, updated, "activity updated", nil)
}

// UploadImage accepts a multipart image and adds it to the activity gallery.
func (h *ActivityHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file required", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read image", nil)
		return
	}
	defer func() { _ = src.Close() }()

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusBadRequest, "file must be an image", nil)
		return
	}
	a, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), src, file.Filename, contentType)
	if err != nil {
		if err == app.ErrActivityNotFound {
			response.Error[any](c, http.StatusNotFound, "activity not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, a, "image uploaded", nil)
}
