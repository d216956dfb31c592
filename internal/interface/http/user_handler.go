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

type UserHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *app.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type verifyRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
}

type onboardingOrgRequest struct {
	Name        string `json:"name" binding:"required"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Website     string `json:"website" binding:"omitempty,url"`
}

type onboardingRequest struct {
	FirstName    string                `json:"firstName" binding:"required"`
	LastName     string                `json:"lastName" binding:"required"`
	Role         string                `json:"role" binding:"required"`
	Organization *onboardingOrgRequest `json:"organization"`
}

// Register creates an account and signs the new user in.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmailTaken), errors.Is(err, app.ErrUsernameTaken):
			response.Error[any](c, http.StatusConflict, err.Error(), nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		}
		return
	}
	pair, err := h.Svc.IssueToken(c.Request.Context(), u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"token": pair.AccessToken, "user": u}, "registered", gin.H{
		"access_expires_at": pair.AccessTokenExpiry,
	})
}

// Verify checks email/password and issues a token.
func (h *UserHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": pair.AccessToken, "user": u}, "verified", gin.H{
		"access_expires_at": pair.AccessTokenExpiry,
	})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// Update applies a partial update to a user. Only self-updates are allowed.
func (h *UserHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	target := c.Param("id")

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), uid, target, app.UpdateUserInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrForbidden):
			response.Error[any](c, http.StatusForbidden, err.Error(), nil)
		case errors.Is(err, app.ErrNoUpdateData):
			response.Error[any](c, http.StatusBadRequest, "No update data provided", nil)
		case errors.Is(err, app.ErrUsernameTaken):
			response.Error[any](c, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, app.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

// Onboarding saves the profile, optionally creates an organization, and
// marks onboarding complete.
func (h *UserHandler) Onboarding(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := app.OnboardingInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
	if req.Organization != nil {
		in.Organization = &app.OnboardingOrganization{
			Name:        req.Organization.Name,
			Industry:    req.Organization.Industry,
			CompanySize: req.Organization.CompanySize,
			Website:     req.Organization.Website,
		}
	}
	u, err := h.Svc.CompleteOnboarding(c.Request.Context(), uid, in)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "onboarding failed", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "onboarding complete", nil)
}
