package service

import (
	"context"
	"sync"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// ChipStep names a step of the chip activation flow.
type ChipStep string

const (
	ChipStepEnterICCID     ChipStep = "ENTER_ICCID"
	ChipStepConfirmProfile ChipStep = "CONFIRM_PROFILE"
	ChipStepChoosePlan     ChipStep = "CHOOSE_PLAN"
	ChipStepAcceptTerms    ChipStep = "ACCEPT_TERMS"
	ChipStepReviewSummary  ChipStep = "REVIEW_SUMMARY"
	ChipStepSuccess        ChipStep = "SUCCESS"
)

// chipSteps is the ordered sequence; transitions move exactly one position.
var chipSteps = []ChipStep{
	ChipStepEnterICCID,
	ChipStepConfirmProfile,
	ChipStepChoosePlan,
	ChipStepAcceptTerms,
	ChipStepReviewSummary,
	ChipStepSuccess,
}

// minICCIDDigits gates the local ICCID check before the remote validation.
const minICCIDDigits = 19

// ChipEvent is the tagged union of inputs accepted by Next. Each step
// accepts exactly one event type.
type ChipEvent interface{ chipEvent() }

type SubmitICCID struct{ ICCID string }
type ConfirmProfile struct{}
type ChoosePlan struct{ PlanID string }
type AcceptTerms struct {
	Accepted bool
	Version  string
}
type ConfirmActivation struct{}

func (SubmitICCID) chipEvent()       {}
func (ConfirmProfile) chipEvent()    {}
func (ChoosePlan) chipEvent()        {}
func (AcceptTerms) chipEvent()       {}
func (ConfirmActivation) chipEvent() {}

// ChipActivationData is the form data accumulated across steps. It survives
// failed transitions so a retry never loses prior input.
type ChipActivationData struct {
	ICCID         string `json:"iccid"`
	ChipStatus    string `json:"chipStatus,omitempty"`
	PlanID        string `json:"planId,omitempty"`
	TermsAccepted bool   `json:"termsAccepted"`
	TermsVersion  string `json:"termsVersion,omitempty"`
	MSISDN        string `json:"msisdn,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ChipActivationFlow walks the guided chip activation sequence. Every
// transition is gated by a validation predicate; a blocked or failed
// transition leaves the step and accumulated data untouched.
type ChipActivationFlow struct {
	gw         ports.SkyGateway
	customerID string

	mu      sync.Mutex
	stepIdx int
	data    ChipActivationData
	exited  bool
}

func NewChipActivationFlow(gw ports.SkyGateway, customerID string) *ChipActivationFlow {
	return &ChipActivationFlow{gw: gw, customerID: customerID}
}

// Step returns the current step.
func (f *ChipActivationFlow) Step() ChipStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return chipSteps[f.stepIdx]
}

// Data returns a copy of the accumulated form data.
func (f *ChipActivationFlow) Data() ChipActivationData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Exited reports whether backward navigation left the flow.
func (f *ChipActivationFlow) Exited() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exited
}

// Next applies ev to the current step. On success the flow advances exactly
// one step; a validation failure or remote error keeps the current step.
func (f *ChipActivationFlow) Next(ctx context.Context, ev ChipEvent) (ChipStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.exited || chipSteps[f.stepIdx] == ChipStepSuccess {
		return chipSteps[f.stepIdx], domain.ErrFlowFinished
	}

	switch step := chipSteps[f.stepIdx]; step {
	case ChipStepEnterICCID:
		e, ok := ev.(SubmitICCID)
		if !ok {
			return step, unexpectedEvent(string(step))
		}
		if len(e.ICCID) < minICCIDDigits {
			return step, &domain.ValidationError{Field: "iccid", Reason: "ICCID deve ter pelo menos 19 dígitos"}
		}
		res, err := f.gw.ValidateChip(ctx, e.ICCID)
		if err != nil {
			return step, err
		}
		if !res.Valid {
			// remote-reported invalidity: surface the server message
			// without advancing.
			return step, domain.NewAPIError("CHIP_INVALID", res.ErrorMessage)
		}
		f.data.ICCID = e.ICCID
		f.data.ChipStatus = res.ChipStatus

	case ChipStepConfirmProfile:
		if _, ok := ev.(ConfirmProfile); !ok {
			return step, unexpectedEvent(string(step))
		}

	case ChipStepChoosePlan:
		e, ok := ev.(ChoosePlan)
		if !ok {
			return step, unexpectedEvent(string(step))
		}
		if e.PlanID == "" {
			return step, &domain.ValidationError{Field: "planId", Reason: "selecione um plano"}
		}
		f.data.PlanID = e.PlanID

	case ChipStepAcceptTerms:
		e, ok := ev.(AcceptTerms)
		if !ok {
			return step, unexpectedEvent(string(step))
		}
		if !e.Accepted {
			return step, &domain.ValidationError{Field: "termsAccepted", Reason: "aceite os termos para continuar"}
		}
		f.data.TermsAccepted = true
		f.data.TermsVersion = e.Version

	case ChipStepReviewSummary:
		if _, ok := ev.(ConfirmActivation); !ok {
			return step, unexpectedEvent(string(step))
		}
		res, err := f.gw.ActivateChip(ctx, ports.ActivateChipInput{
			ICCID:                f.data.ICCID,
			CustomerID:           f.customerID,
			PlanID:               f.data.PlanID,
			AcceptedTermsVersion: f.data.TermsVersion,
		})
		if err != nil {
			// same step re-presented with a retry-able error; the
			// accumulated data stays intact.
			return step, err
		}
		f.data.MSISDN = res.MSISDN
		f.data.Message = res.Message
	}

	f.stepIdx++
	return chipSteps[f.stepIdx], nil
}

// Back moves one step backwards. At the initial step it exits the flow
// entirely; at the terminal step it is a no-op.
func (f *ChipActivationFlow) Back() (ChipStep, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if chipSteps[f.stepIdx] == ChipStepSuccess {
		return ChipStepSuccess, false
	}
	if f.stepIdx == 0 {
		f.exited = true
		return chipSteps[0], true
	}
	f.stepIdx--
	return chipSteps[f.stepIdx], false
}

func unexpectedEvent(step string) error {
	return &domain.ValidationError{Field: "event", Reason: "evento não aceito no passo " + step}
}
