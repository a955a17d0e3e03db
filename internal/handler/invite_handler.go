package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "resmatic/internal/errors"
	"resmatic/internal/middleware"
	"resmatic/internal/model"
	"resmatic/internal/service"
)

// InviteHandler handles staff invite endpoints.
type InviteHandler struct {
	inviteService service.InviteService
}

// NewInviteHandler creates a new invite handler.
func NewInviteHandler(inviteService service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// CreateInviteRequest represents a staff invite request.
type CreateInviteRequest struct {
	Email      string           `json:"email" validate:"required,email"`
	TenantRole model.TenantRole `json:"tenant_role" validate:"required,oneof=MANAGER WAITER"`
}

// AcceptInviteRequest represents an invite redemption.
type AcceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

// Create godoc
// @Summary Invite a staff member
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body CreateInviteRequest true "Invite"
// @Success 201 {object} model.StaffInvite
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id}/invites [post]
func (h *InviteHandler) Create(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req CreateInviteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	invite, err := h.inviteService.Create(c.Request().Context(), claims.SubjectID, restaurantID, req.Email, req.TenantRole)
	if err != nil {
		return middleware.Respond(err)
	}
	return c.JSON(http.StatusCreated, invite)
}

// ListPending godoc
// @Summary List pending invites
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {array} model.StaffInvite
// @Failure 403 {object} errors.ErrorResponse
// @Router /restaurants/{id}/invites [get]
func (h *InviteHandler) ListPending(c echo.Context) error {
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	invites, err := h.inviteService.ListPending(c.Request().Context(), restaurantID)
	if err != nil {
		return middleware.Respond(err)
	}
	if invites == nil {
		invites = []model.StaffInvite{}
	}
	return c.JSON(http.StatusOK, invites)
}

// Accept godoc
// @Summary Accept an invite
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AcceptInviteRequest true "Invite token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /invites/accept [post]
func (h *InviteHandler) Accept(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return middleware.Respond(apperrors.ErrInvalidToken)
	}
	var req AcceptInviteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	restaurantID, err := h.inviteService.Accept(c.Request().Context(), claims.SubjectID, claims.Email, req.Token)
	if err != nil {
		return middleware.Respond(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"restaurant_id": restaurantID.String()})
}
