package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "resmatic/internal/errors"
	"resmatic/internal/middleware"
	"resmatic/internal/model"
	"resmatic/internal/service"
)

// RestaurantHandler handles restaurant and membership endpoints.
type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// CreateRestaurantRequest represents a restaurant creation request.
type CreateRestaurantRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateRestaurantRequest represents a partial restaurant update.
type UpdateRestaurantRequest struct {
	Name   *string                 `json:"name,omitempty" validate:"omitempty,max=255"`
	Status *model.RestaurantStatus `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE ARCHIVED"`
}

// UpdateMemberRequest represents a member role change.
type UpdateMemberRequest struct {
	TenantRole model.TenantRole `json:"tenant_role" validate:"required,oneof=MANAGER WAITER"`
}

// Create godoc
// @Summary Create a restaurant owned by the caller
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} model.Restaurant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return middleware.Respond(apperrors.ErrInvalidToken)
	}
	var req CreateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	restaurant, err := h.restaurantService.Create(c.Request().Context(), claims.SubjectID, req.Name)
	if err != nil {
		return middleware.Respond(err)
	}
	return c.JSON(http.StatusCreated, restaurant)
}

// List godoc
// @Summary List active restaurants the caller owns or works at
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Restaurant
// @Failure 401 {object} errors.ErrorResponse
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	return h.list(c, model.RestaurantStatusActive)
}

// ListArchived godoc
// @Summary List archived restaurants the caller owns or works at
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Restaurant
// @Failure 401 {object} errors.ErrorResponse
// @Router /restaurants/archived [get]
func (h *RestaurantHandler) ListArchived(c echo.Context) error {
	return h.list(c, model.RestaurantStatusArchived)
}

func (h *RestaurantHandler) list(c echo.Context, status model.RestaurantStatus) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return middleware.Respond(apperrors.ErrInvalidToken)
	}
	list, err := h.restaurantService.ListForUser(c.Request().Context(), claims.SubjectID, claims.Role, status)
	if err != nil {
		return middleware.Respond(err)
	}
	if list == nil {
		list = []model.Restaurant{}
	}
	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get a restaurant
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {object} model.Restaurant
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	restaurant, err := h.restaurantService.GetForUser(c.Request().Context(), claims.SubjectID, claims.Role, restaurantID)
	if err != nil {
		return middleware.Respond(err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

// Update godoc
// @Summary Update a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body UpdateRestaurantRequest true "Fields to change"
// @Success 200 {object} model.Restaurant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id} [patch]
func (h *RestaurantHandler) Update(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	restaurant, err := h.restaurantService.Update(c.Request().Context(), claims.SubjectID, restaurantID, req.Name, req.Status)
	if err != nil {
		return middleware.Respond(err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

// Archive godoc
// @Summary Archive a restaurant
// @Tags restaurants
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id} [delete]
func (h *RestaurantHandler) Archive(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.restaurantService.Archive(c.Request().Context(), claims.SubjectID, restaurantID); err != nil {
		return middleware.Respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMembers godoc
// @Summary List restaurant members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {array} model.RestaurantMember
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id}/members [get]
func (h *RestaurantHandler) ListMembers(c echo.Context) error {
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.restaurantService.ListMembers(c.Request().Context(), restaurantID)
	if err != nil {
		return middleware.Respond(err)
	}
	if members == nil {
		members = []model.RestaurantMember{}
	}
	return c.JSON(http.StatusOK, members)
}

// UpdateMember godoc
// @Summary Change a member's role
// @Tags members
// @Accept json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param userId path string true "User ID"
// @Param request body UpdateMemberRequest true "New role"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /restaurants/{id}/members/{userId} [patch]
func (h *RestaurantHandler) UpdateMember(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	var req UpdateMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.restaurantService.UpdateMemberRole(c.Request().Context(), claims.SubjectID, restaurantID, userID, req.TenantRole); err != nil {
		return middleware.Respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags members
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /restaurants/{id}/members/{userId} [delete]
func (h *RestaurantHandler) RemoveMember(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.restaurantService.RemoveMember(c.Request().Context(), claims.SubjectID, restaurantID, userID); err != nil {
		return middleware.Respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}
