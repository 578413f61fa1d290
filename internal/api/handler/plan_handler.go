package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skymovel/app-core/internal/core/ports"
	"github.com/skymovel/app-core/internal/core/service"
)

// PlanHandler exposes the plan catalog, plan changes and data package
// purchases.
type PlanHandler struct {
	account *service.AccountService
}

func NewPlanHandler(account *service.AccountService) *PlanHandler {
	return &PlanHandler{account: account}
}

type changePlanRequest struct {
	NewPlanID     string `json:"newPlanId" validate:"required"`
	EffectiveDate string `json:"effectiveDate"`
}

type purchasePackageRequest struct {
	PackageID     string `json:"packageId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=CREDIT_CARD BALANCE ADD_TO_INVOICE"`
	CardToken     string `json:"cardToken"`
}

// Available lists the plans the customer can migrate to.
//
// @Summary      List available plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.AvailablePlan
// @Router       /v1/plans/available [get]
func (h *PlanHandler) Available(c echo.Context) error {
	plans, err := h.account.AvailablePlans(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// Change requests a plan migration.
//
// @Summary      Change plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePlanRequest  true  "Target plan"
// @Success      200   {object}  ports.ChangePlanResult
// @Router       /v1/plans/change [post]
func (h *PlanHandler) Change(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	var req changePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.account.ChangePlan(c.Request().Context(), ports.ChangePlanInput{
		CustomerID:    customerID,
		NewPlanID:     req.NewPlanID,
		EffectiveDate: req.EffectiveDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Packages lists the add-on data bundles.
//
// @Summary      List data packages
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.DataPackage
// @Router       /v1/data-packages [get]
func (h *PlanHandler) Packages(c echo.Context) error {
	packages, err := h.account.DataPackages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, packages)
}

// Purchase buys an add-on data bundle.
//
// @Summary      Purchase a data package
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      purchasePackageRequest  true  "Package and payment"
// @Success      200   {object}  ports.PurchaseResult
// @Router       /v1/data-packages/purchase [post]
func (h *PlanHandler) Purchase(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	var req purchasePackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.account.PurchaseDataPackage(c.Request().Context(), ports.PurchaseDataPackageInput{
		CustomerID:    customerID,
		PackageID:     req.PackageID,
		PaymentMethod: req.PaymentMethod,
		CardToken:     req.CardToken,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
