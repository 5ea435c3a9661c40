package auth

import (
	"net/http"
	"time"

	autherrors "go-metallurg/internal/auth/errors"
	"go-metallurg/internal/middleware"
	"go-metallurg/internal/shared/apperror"
	platform "go-metallurg/internal/shared/request"
	"go-metallurg/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// CookieOptions controls the cookies handed to browser clients.
type CookieOptions struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Handler struct {
	service Service
	cookies CookieOptions
	logger  *zap.Logger
}

func NewHandler(s Service, cookies CookieOptions, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, cookies: cookies, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) setTokenCookies(c *gin.Context, tokens Tokens) {
	h.setCookie(c, accessCookie, tokens.AccessToken, int(h.cookies.AccessTTL.Seconds()))
	h.setCookie(c, refreshCookie, tokens.RefreshToken, int(h.cookies.RefreshTTL.Seconds()))
}

func isWeb(c *gin.Context) bool {
	clientType := platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	return platform.IsWebClient(clientType)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	tokens, userResp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWeb(c) {
		h.setTokenCookies(c, tokens)
	}

	response.Success(c, http.StatusOK, AuthResponse{
		User:         userResp,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	web := isWeb(c)

	var refreshToken string
	if web {
		refreshToken, _ = c.Cookie(refreshCookie)
	}
	if refreshToken == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, autherrors.ErrInvalidRefreshToken)
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if web {
		h.setTokenCookies(c, tokens)
	}

	response.Success(c, http.StatusOK, AuthResponse{
		User:         userResp,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -1)
	h.setCookie(c, refreshCookie, "", -1)

	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) Me(c *gin.Context) {
	userResp, err := h.service.GetMe(c.Request.Context(), c.GetString(middleware.KeyUserID))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetString(middleware.KeyUserID), req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password updated", nil)
}
