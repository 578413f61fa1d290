package service

import (
	"context"
	"sync"

	"github.com/skymovel/app-core/internal/core/domain"
)

// CancellationStep names a step of the cancellation flow.
type CancellationStep string

const (
	CancelStepConfirmIntent  CancellationStep = "CONFIRM_INTENT"
	CancelStepRetentionOffer CancellationStep = "RETENTION_OFFER"
	CancelStepFeeNotice      CancellationStep = "FEE_NOTICE"
	CancelStepReason         CancellationStep = "REASON"
	CancelStepProtocol       CancellationStep = "PROTOCOL"
)

var cancellationSteps = []CancellationStep{
	CancelStepConfirmIntent,
	CancelStepRetentionOffer,
	CancelStepFeeNotice,
	CancelStepReason,
	CancelStepProtocol,
}

// CancellationEvent is the tagged union of inputs accepted by Next.
type CancellationEvent interface{ cancellationEvent() }

type ConfirmIntent struct{}

// AcceptOffer takes the retention offer and exits the flow entirely; the
// cancellation never happens. This is the only non-linear transition.
type AcceptOffer struct{}

// DeclineOffer explicitly refuses the retention offer and continues.
type DeclineOffer struct{}

type AcknowledgeFee struct{}

type SubmitReason struct {
	Reason   string
	Feedback string
}

func (ConfirmIntent) cancellationEvent()  {}
func (AcceptOffer) cancellationEvent()    {}
func (DeclineOffer) cancellationEvent()   {}
func (AcknowledgeFee) cancellationEvent() {}
func (SubmitReason) cancellationEvent()   {}

// CancellationData accumulates across steps and survives failed attempts.
type CancellationData struct {
	Reason   string                        `json:"reason,omitempty"`
	Feedback string                        `json:"feedback,omitempty"`
	Receipt  *domain.ServiceRequestReceipt `json:"receipt,omitempty"`
}

// requestCreator submits the terminal service request. Satisfied by
// *RequestService so created cancellations hit the audit trail too.
type requestCreator interface {
	Create(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error)
}

// CancellationFlow walks the guided cancellation sequence, including the
// retention-offer branch.
type CancellationFlow struct {
	requests   requestCreator
	customerID string
	lineID     string

	mu            sync.Mutex
	stepIdx       int
	data          CancellationData
	exited        bool
	offerAccepted bool
}

func NewCancellationFlow(requests requestCreator, customerID, lineID string) *CancellationFlow {
	return &CancellationFlow{requests: requests, customerID: customerID, lineID: lineID}
}

func (f *CancellationFlow) Step() CancellationStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cancellationSteps[f.stepIdx]
}

func (f *CancellationFlow) Data() CancellationData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Exited reports whether the flow was left without completing, either by
// backing out of the first step or by accepting the retention offer.
func (f *CancellationFlow) Exited() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exited
}

// OfferAccepted reports whether the retention offer ended the flow.
func (f *CancellationFlow) OfferAccepted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offerAccepted
}

// Next applies ev to the current step. All transitions are strictly
// sequential except the retention-offer branch, where AcceptOffer exits the
// flow to a neutral screen instead of advancing.
func (f *CancellationFlow) Next(ctx context.Context, ev CancellationEvent) (CancellationStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.exited || cancellationSteps[f.stepIdx] == CancelStepProtocol {
		return cancellationSteps[f.stepIdx], domain.ErrFlowFinished
	}

	switch step := cancellationSteps[f.stepIdx]; step {
	case CancelStepConfirmIntent:
		if _, ok := ev.(ConfirmIntent); !ok {
			return step, unexpectedEvent(string(step))
		}

	case CancelStepRetentionOffer:
		switch ev.(type) {
		case AcceptOffer:
			f.exited = true
			f.offerAccepted = true
			return step, nil
		case DeclineOffer:
			// explicit decline required to continue
		default:
			return step, unexpectedEvent(string(step))
		}

	case CancelStepFeeNotice:
		if _, ok := ev.(AcknowledgeFee); !ok {
			return step, unexpectedEvent(string(step))
		}

	case CancelStepReason:
		e, ok := ev.(SubmitReason)
		if !ok {
			return step, unexpectedEvent(string(step))
		}
		if e.Reason == "" {
			return step, &domain.ValidationError{Field: "reason", Reason: "informe o motivo do cancelamento"}
		}
		// store before the remote call so the data survives a failure
		f.data.Reason = e.Reason
		f.data.Feedback = e.Feedback

		receipt, err := f.requests.Create(ctx, domain.ServiceRequest{
			Type:       domain.RequestCancellation,
			CustomerID: f.customerID,
			LineID:     f.lineID,
			Details:    domain.RequestDetails{Reason: e.Reason, Feedback: e.Feedback},
		})
		if err != nil {
			return step, err
		}
		f.data.Receipt = receipt
	}

	f.stepIdx++
	return cancellationSteps[f.stepIdx], nil
}

// Back moves one step backwards; at the initial step (or the final protocol
// screen) it exits the flow.
func (f *CancellationFlow) Back() (CancellationStep, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	step := cancellationSteps[f.stepIdx]
	if step == CancelStepProtocol || f.stepIdx == 0 {
		f.exited = true
		return step, true
	}
	f.stepIdx--
	return cancellationSteps[f.stepIdx], false
}
