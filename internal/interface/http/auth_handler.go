package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	app "github.com/drewhq/drew/internal/application"
	"github.com/drewhq/drew/internal/interface/middleware"
	"github.com/drewhq/drew/pkg/response"
	"github.com/drewhq/drew/pkg/validation"
)

type AuthHandler struct {
	Svc               *app.UserService
	Logger            *logrus.Logger
	GoogleClientID    string
	GoogleRedirectURL string
}

func NewAuthHandler(svc *app.UserService, logger *logrus.Logger, googleClientID, googleRedirectURL string) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, GoogleClientID: googleClientID, GoogleRedirectURL: googleRedirectURL}
}

type magicLinkInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type magicLinkConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// MagicLinkInit queues a sign-in email. The response is the same whether or
// not the address is registered.
func (h *AuthHandler) MagicLinkInit(c *gin.Context) {
	var req magicLinkInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.MagicLinkInit(c.Request.Context(), req.Email); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("magic link init failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "could not send sign-in link", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "if the address is registered, a sign-in link is on its way", nil)
}

// MagicLinkConfirm redeems a token for a signed-in session.
func (h *AuthHandler) MagicLinkConfirm(c *gin.Context) {
	var req magicLinkConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.MagicLinkConfirm(c.Request.Context(), req.Token)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid or expired sign-in link", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": pair.AccessToken, "user": u}, "signed in", gin.H{
		"access_expires_at": pair.AccessTokenExpiry,
	})
}

// GoogleRedirect sends the browser to Google's OAuth consent screen. The
// session is established when the provider calls back.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	if h.GoogleClientID == "" {
		response.Error[any](c, http.StatusServiceUnavailable, "google sign-in not configured", nil)
		return
	}
	q := url.Values{}
	q.Set("client_id", h.GoogleClientID)
	q.Set("redirect_uri", h.GoogleRedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("state", uuid.NewString())
	c.Redirect(http.StatusFound, "https://accounts.google.com/o/oauth2/v2/auth?"+q.Encode())
}

// Logout drops the server-side session.
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	h.Svc.Logout(c.Request.Context(), uid)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
