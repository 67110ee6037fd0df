package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-service/internal/application"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-service/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
	"github.com/oksasatya/go-ddd-auth-service/pkg/response"
	"github.com/oksasatya/go-ddd-auth-service/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.Service
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.Service, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

// String fields are not required by binding: an absent or empty value reaches
// the entity parsers and is reported as a 400 value error.
type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Requires2FA *bool  `json:"requires2FA" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verify2FARequest struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	TwoFACode      string `json:"2FACode"`
}

type verifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Signup POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password, *req.Requires2FA); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "User created successfully!", nil)
}

// Login POST /login. Users with 2FA get 206 and a login attempt id instead
// of a cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Requires2FA {
		response.Success(c, http.StatusPartialContent, gin.H{"loginAttemptId": res.LoginAttemptID.String()}, "2FA required", nil)
		return
	}
	h.Cookies.Set(c, res.Token.Value, res.Token.ExpiresAt)
	response.Success[any](c, http.StatusOK, nil, "login successful", gin.H{"expires_at": res.Token.ExpiresAt})
}

// Verify2FA POST /verify-2fa
func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req verify2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	tok, err := h.Svc.Verify2FA(c.Request.Context(), req.Email, req.LoginAttemptID, req.TwoFACode)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Cookies.Set(c, tok.Value, tok.ExpiresAt)
	response.Success[any](c, http.StatusOK, nil, "2FA verified", gin.H{"expires_at": tok.ExpiresAt})
}

// Logout POST /logout, behind middleware.RequireTokenCookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxTokenKey)); err != nil {
		h.fail(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// VerifyToken POST /verify-token
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyToken(c.Request.Context(), req.Token); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "token is valid", nil)
}

// fail maps service errors onto HTTP statuses.
func (h *AuthHandler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		helpers.LogError(h.Logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString(response.RequestIDKey),
		})
	}
	response.Error[any](c, status, msg, nil)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrEmptyEmail),
		errors.Is(err, entity.ErrInvalidEmailFormat),
		errors.Is(err, entity.ErrEmptyPassword),
		errors.Is(err, entity.ErrPasswordTooShort),
		errors.Is(err, entity.ErrInvalidLoginAttemptID),
		errors.Is(err, entity.ErrInvalidTwoFACode),
		errors.Is(err, application.ErrMissingToken):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repo.ErrUserAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, repo.ErrUserNotFound),
		errors.Is(err, repo.ErrInvalidCredentials):
		return http.StatusUnauthorized, "incorrect credentials"
	case errors.Is(err, application.ErrInvalid2FA):
		return http.StatusUnauthorized, "incorrect 2FA credentials"
	case errors.Is(err, application.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	default:
		return http.StatusInternalServerError, "unexpected error"
	}
}
