package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/service"
)

// BillingHandler exposes invoices and billing preferences.
type BillingHandler struct {
	account *service.AccountService
}

func NewBillingHandler(account *service.AccountService) *BillingHandler {
	return &BillingHandler{account: account}
}

type dueDateRequest struct {
	NewDueDay int `json:"newDueDay" validate:"required,min=1,max=28"`
}

type paymentMethodRequest struct {
	Method    string `json:"method" validate:"required,oneof=BOLETO CREDIT_CARD DEBIT_AUTO"`
	CardToken string `json:"cardToken"`
}

// Invoices lists the customer's bills, newest first.
//
// @Summary      List invoices
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Invoice
// @Router       /v1/invoices [get]
func (h *BillingHandler) Invoices(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}
	invoices, err := h.account.Invoices(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

// ChangeDueDate moves the monthly due day.
//
// @Summary      Change invoice due day
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dueDateRequest  true  "New due day (1-28)"
// @Success      200   {object}  ports.OperationResult
// @Router       /v1/billing/due-date [put]
func (h *BillingHandler) ChangeDueDate(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	var req dueDateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.account.ChangeDueDate(c.Request().Context(), customerID, req.NewDueDay)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// ChangePaymentMethod switches the recurring payment method.
//
// @Summary      Change payment method
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentMethodRequest  true  "New payment method"
// @Success      200   {object}  ports.OperationResult
// @Router       /v1/billing/payment-method [put]
func (h *BillingHandler) ChangePaymentMethod(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	var req paymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.account.ChangePaymentMethod(c.Request().Context(), customerID, domain.PaymentMethod(req.Method), req.CardToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
