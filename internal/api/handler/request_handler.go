package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skymovel/app-core/internal/api/metrics"
	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/service"
)

// RequestHandler exposes service request creation and history.
type RequestHandler struct {
	requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type createRequestRequest struct {
	Type    string                `json:"type" validate:"required,oneof=PORTABILITY CHIP_SWAP BLOCK UNBLOCK CANCELLATION"`
	LineID  string                `json:"lineId" validate:"required"`
	Details domain.RequestDetails `json:"details"`
}

// Create submits a service request to the carrier core.
//
// @Summary      Create a service request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request payload"
// @Success      201   {object}  domain.ServiceRequestReceipt
// @Router       /v1/service-requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	receipt, err := h.requests.Create(c.Request().Context(), domain.ServiceRequest{
		Type:       domain.ServiceRequestType(req.Type),
		CustomerID: customerID,
		LineID:     req.LineID,
		Details:    req.Details,
	})
	if err != nil {
		metrics.ServiceRequestsTotal.WithLabelValues(req.Type, "error").Inc()
		return err
	}

	metrics.ServiceRequestsTotal.WithLabelValues(req.Type, "ok").Inc()
	return c.JSON(http.StatusCreated, receipt)
}

// History lists past requests, newest first.
//
// @Summary      Service request history
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ServiceRequestHistoryItem
// @Router       /v1/service-requests [get]
func (h *RequestHandler) History(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}
	items, err := h.requests.History(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
