package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"resmatic/internal/auth"
	apperrors "resmatic/internal/errors"
	"resmatic/internal/middleware"
	"resmatic/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken      auth.AccessToken  `json:"access_token"`
	RefreshToken     auth.RefreshToken `json:"refresh_token"`
	AccessExpiresAt  int64             `json:"access_expires_at"`
	RefreshExpiresAt int64             `json:"refresh_expires_at"`
	User             interface{}       `json:"user"`
}

func authResponse(res *service.LoginResult) AuthResponse {
	return AuthResponse{
		AccessToken:      res.Tokens.AccessToken,
		RefreshToken:     res.Tokens.RefreshToken,
		AccessExpiresAt:  res.Tokens.AccessExpiresAt.Unix(),
		RefreshExpiresAt: res.Tokens.RefreshExpiresAt.Unix(),
		User:             res.User,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return middleware.Respond(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return middleware.Respond(err)
	}

	return c.JSON(http.StatusOK, authResponse(res))
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Description The refresh token is sent as a Bearer token. It is revoked and a new pair is returned.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return middleware.Respond(apperrors.ErrInvalidToken)
	}

	res, err := h.authService.Refresh(c.Request().Context(), auth.RefreshToken(token))
	if err != nil {
		return middleware.Respond(err)
	}

	return c.JSON(http.StatusOK, authResponse(res))
}

// Logout godoc
// @Summary Logout from every session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return middleware.Respond(apperrors.ErrInvalidToken)
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return middleware.Respond(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return middleware.Respond(apperrors.ErrInvalidToken)
	}

	user, err := h.authService.Me(c.Request().Context(), claims.SubjectID)
	if err != nil {
		return middleware.Respond(err)
	}
	return c.JSON(http.StatusOK, user)
}

// AdminCheck godoc
// @Summary Verify the caller is a global admin
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/admin-check [get]
func (h *AuthHandler) AdminCheck(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":    true,
		"email": claims.Email,
		"role":  claims.Role,
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// bindAndValidate binds the body into req and runs the validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_INPUT",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_INPUT",
		})
	}
	return nil
}
