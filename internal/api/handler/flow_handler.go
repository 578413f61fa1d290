package handler

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skymovel/app-core/internal/api/metrics"
	"github.com/skymovel/app-core/internal/core/ports"
	"github.com/skymovel/app-core/internal/core/service"
)

// FlowHandler hosts the guided flows. Each started flow lives in an in-memory
// registry keyed by a uuid; the client advances it with events and walks back
// with an explicit back call. Flows are process-local, exactly like the
// screen-stack navigation they model.
type FlowHandler struct {
	gw       ports.SkyGateway
	requests *service.RequestService

	mu            sync.Mutex
	chipFlows     map[string]*service.ChipActivationFlow
	cancellations map[string]*service.CancellationFlow
}

func NewFlowHandler(gw ports.SkyGateway, requests *service.RequestService) *FlowHandler {
	return &FlowHandler{
		gw:            gw,
		requests:      requests,
		chipFlows:     make(map[string]*service.ChipActivationFlow),
		cancellations: make(map[string]*service.CancellationFlow),
	}
}

// --- Chip activation ---

type chipFlowResponse struct {
	FlowID string                     `json:"flowId"`
	Step   service.ChipStep           `json:"step"`
	Exited bool                       `json:"exited"`
	Data   service.ChipActivationData `json:"data"`
}

type chipEventRequest struct {
	Event    string `json:"event" validate:"required,oneof=SUBMIT_ICCID CONFIRM_PROFILE CHOOSE_PLAN ACCEPT_TERMS CONFIRM_ACTIVATION"`
	ICCID    string `json:"iccid"`
	PlanID   string `json:"planId"`
	Accepted bool   `json:"accepted"`
	Version  string `json:"version"`
}

func (r chipEventRequest) toEvent() service.ChipEvent {
	switch r.Event {
	case "SUBMIT_ICCID":
		return service.SubmitICCID{ICCID: r.ICCID}
	case "CONFIRM_PROFILE":
		return service.ConfirmProfile{}
	case "CHOOSE_PLAN":
		return service.ChoosePlan{PlanID: r.PlanID}
	case "ACCEPT_TERMS":
		return service.AcceptTerms{Accepted: r.Accepted, Version: r.Version}
	default:
		return service.ConfirmActivation{}
	}
}

// StartChipActivation creates a chip activation flow at its first step.
//
// @Summary      Start chip activation
// @Tags         flows
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  chipFlowResponse
// @Router       /v1/flows/chip-activation [post]
func (h *FlowHandler) StartChipActivation(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	flow := service.NewChipActivationFlow(h.gw, customerID)

	h.mu.Lock()
	h.chipFlows[id] = flow
	h.mu.Unlock()

	metrics.FlowsStartedTotal.WithLabelValues("chip_activation").Inc()
	return c.JSON(http.StatusCreated, chipFlowState(id, flow))
}

// GetChipActivation returns the flow's current step and accumulated data.
//
// @Summary      Chip activation state
// @Tags         flows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Flow id"
// @Success      200  {object}  chipFlowResponse
// @Router       /v1/flows/chip-activation/{id} [get]
func (h *FlowHandler) GetChipActivation(c echo.Context) error {
	flow, err := h.chipFlow(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chipFlowState(c.Param("id"), flow))
}

// AdvanceChipActivation applies one event to the flow. A validation failure
// or boundary error leaves the step and data untouched.
//
// @Summary      Advance chip activation
// @Tags         flows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Flow id"
// @Param        body  body      chipEventRequest  true  "Step event"
// @Success      200   {object}  chipFlowResponse
// @Router       /v1/flows/chip-activation/{id}/next [post]
func (h *FlowHandler) AdvanceChipActivation(c echo.Context) error {
	flow, err := h.chipFlow(c.Param("id"))
	if err != nil {
		return err
	}

	var req chipEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	step, err := flow.Next(c.Request().Context(), req.toEvent())
	if err != nil {
		return err
	}
	if step == service.ChipStepSuccess {
		metrics.FlowsFinishedTotal.WithLabelValues("chip_activation", "completed").Inc()
	}
	return c.JSON(http.StatusOK, chipFlowState(c.Param("id"), flow))
}

// BackChipActivation moves one step backwards; at the first step it exits
// the flow.
//
// @Summary      Step back in chip activation
// @Tags         flows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Flow id"
// @Success      200  {object}  chipFlowResponse
// @Router       /v1/flows/chip-activation/{id}/back [post]
func (h *FlowHandler) BackChipActivation(c echo.Context) error {
	flow, err := h.chipFlow(c.Param("id"))
	if err != nil {
		return err
	}
	if _, exited := flow.Back(); exited {
		metrics.FlowsFinishedTotal.WithLabelValues("chip_activation", "exited").Inc()
	}
	return c.JSON(http.StatusOK, chipFlowState(c.Param("id"), flow))
}

func (h *FlowHandler) chipFlow(id string) (*service.ChipActivationFlow, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	flow, ok := h.chipFlows[id]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "flow not found")
	}
	return flow, nil
}

func chipFlowState(id string, flow *service.ChipActivationFlow) chipFlowResponse {
	return chipFlowResponse{
		FlowID: id,
		Step:   flow.Step(),
		Exited: flow.Exited(),
		Data:   flow.Data(),
	}
}

// --- Cancellation ---

type cancellationResponse struct {
	FlowID        string                   `json:"flowId"`
	Step          service.CancellationStep `json:"step"`
	Exited        bool                     `json:"exited"`
	OfferAccepted bool                     `json:"offerAccepted"`
	Data          service.CancellationData `json:"data"`
}

type startCancellationRequest struct {
	LineID string `json:"lineId" validate:"required"`
}

type cancellationEventRequest struct {
	Event    string `json:"event" validate:"required,oneof=CONFIRM_INTENT ACCEPT_OFFER DECLINE_OFFER ACKNOWLEDGE_FEE SUBMIT_REASON"`
	Reason   string `json:"reason"`
	Feedback string `json:"feedback"`
}

func (r cancellationEventRequest) toEvent() service.CancellationEvent {
	switch r.Event {
	case "CONFIRM_INTENT":
		return service.ConfirmIntent{}
	case "ACCEPT_OFFER":
		return service.AcceptOffer{}
	case "DECLINE_OFFER":
		return service.DeclineOffer{}
	case "ACKNOWLEDGE_FEE":
		return service.AcknowledgeFee{}
	default:
		return service.SubmitReason{Reason: r.Reason, Feedback: r.Feedback}
	}
}

// StartCancellation creates a cancellation flow for one line.
//
// @Summary      Start cancellation
// @Tags         flows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startCancellationRequest  true  "Line to cancel"
// @Success      201   {object}  cancellationResponse
// @Router       /v1/flows/cancellation [post]
func (h *FlowHandler) StartCancellation(c echo.Context) error {
	customerID, err := ctxCustomerID(c)
	if err != nil {
		return err
	}

	var req startCancellationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := uuid.NewString()
	flow := service.NewCancellationFlow(h.requests, customerID, req.LineID)

	h.mu.Lock()
	h.cancellations[id] = flow
	h.mu.Unlock()

	metrics.FlowsStartedTotal.WithLabelValues("cancellation").Inc()
	return c.JSON(http.StatusCreated, cancellationState(id, flow))
}

// GetCancellation returns the flow's current step and accumulated data.
//
// @Summary      Cancellation state
// @Tags         flows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Flow id"
// @Success      200  {object}  cancellationResponse
// @Router       /v1/flows/cancellation/{id} [get]
func (h *FlowHandler) GetCancellation(c echo.Context) error {
	flow, err := h.cancellation(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cancellationState(c.Param("id"), flow))
}

// AdvanceCancellation applies one event to the flow. Accepting the retention
// offer exits the flow entirely; the cancellation never happens.
//
// @Summary      Advance cancellation
// @Tags         flows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Flow id"
// @Param        body  body      cancellationEventRequest  true  "Step event"
// @Success      200   {object}  cancellationResponse
// @Router       /v1/flows/cancellation/{id}/next [post]
func (h *FlowHandler) AdvanceCancellation(c echo.Context) error {
	flow, err := h.cancellation(c.Param("id"))
	if err != nil {
		return err
	}

	var req cancellationEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	step, err := flow.Next(c.Request().Context(), req.toEvent())
	if err != nil {
		return err
	}
	if flow.OfferAccepted() {
		metrics.FlowsFinishedTotal.WithLabelValues("cancellation", "retained").Inc()
	} else if step == service.CancelStepProtocol {
		metrics.FlowsFinishedTotal.WithLabelValues("cancellation", "completed").Inc()
	}
	return c.JSON(http.StatusOK, cancellationState(c.Param("id"), flow))
}

// BackCancellation moves one step backwards; at the first step or the
// protocol screen it exits the flow.
//
// @Summary      Step back in cancellation
// @Tags         flows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Flow id"
// @Success      200  {object}  cancellationResponse
// @Router       /v1/flows/cancellation/{id}/back [post]
func (h *FlowHandler) BackCancellation(c echo.Context) error {
	flow, err := h.cancellation(c.Param("id"))
	if err != nil {
		return err
	}
	if _, exited := flow.Back(); exited {
		metrics.FlowsFinishedTotal.WithLabelValues("cancellation", "exited").Inc()
	}
	return c.JSON(http.StatusOK, cancellationState(c.Param("id"), flow))
}

func (h *FlowHandler) cancellation(id string) (*service.CancellationFlow, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	flow, ok := h.cancellations[id]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "flow not found")
	}
	return flow, nil
}

func cancellationState(id string, flow *service.CancellationFlow) cancellationResponse {
	return cancellationResponse{
		FlowID:        id,
		Step:          flow.Step(),
		Exited:        flow.Exited(),
		OfferAccepted: flow.OfferAccepted(),
		Data:          flow.Data(),
	}
}
