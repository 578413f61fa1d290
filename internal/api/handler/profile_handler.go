package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
	"github.com/skymovel/app-core/internal/core/service"
)

// ProfileHandler exposes the customer profile read and partial update.
type ProfileHandler struct {
	account *service.AccountService
}

func NewProfileHandler(account *service.AccountService) *ProfileHandler {
	return &ProfileHandler{account: account}
}

type updateProfileRequest struct {
	Email   *string         `json:"email" validate:"omitempty,email"`
	Phone   *string         `json:"phone"`
	Address *domain.Address `json:"address"`
}

// Get returns the full customer profile.
//
// @Summary      Customer profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CustomerProfile
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}
	profile, err := h.account.Profile(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update applies a partial profile update; absent fields are unchanged.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  ports.OperationResult
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == nil && req.Phone == nil && req.Address == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no fields to update")
	}

	res, err := h.account.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		CustomerID: customerID,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
