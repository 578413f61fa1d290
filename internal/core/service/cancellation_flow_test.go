package service

import (
	"context"
	"errors"
	"testing"

	"github.com/skymovel/app-core/internal/core/domain"
)

// stubCreator satisfies requestCreator directly, without a gateway.
type stubCreator struct {
	created []domain.ServiceRequest
	err     error
}

func (s *stubCreator) Create(_ context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, req)
	return &domain.ServiceRequestReceipt{
		RequestID: "sr-1",
		Protocol:  "SKY2026000123",
		Status:    domain.RequestPending,
	}, nil
}

func TestCancellationHappyPath(t *testing.T) {
	creator := &stubCreator{}
	f := NewCancellationFlow(creator, "cust-001", "line-1")
	ctx := context.Background()

	if f.Step() != CancelStepConfirmIntent {
		t.Fatalf("initial step = %s", f.Step())
	}
	if _, err := f.Next(ctx, ConfirmIntent{}); err != nil {
		t.Fatalf("confirm intent: %v", err)
	}
	if _, err := f.Next(ctx, DeclineOffer{}); err != nil {
		t.Fatalf("decline offer: %v", err)
	}
	if _, err := f.Next(ctx, AcknowledgeFee{}); err != nil {
		t.Fatalf("acknowledge fee: %v", err)
	}
	step, err := f.Next(ctx, SubmitReason{Reason: "Mudança de operadora", Feedback: "Preço alto"})
	if err != nil {
		t.Fatalf("submit reason: %v", err)
	}
	if step != CancelStepProtocol {
		t.Fatalf("step = %s, want PROTOCOL", step)
	}

	data := f.Data()
	if data.Receipt == nil || data.Receipt.Protocol != "SKY2026000123" {
		t.Fatalf("receipt = %+v", data.Receipt)
	}
	if len(creator.created) != 1 {
		t.Fatalf("requests created = %d", len(creator.created))
	}
	req := creator.created[0]
	if req.Type != domain.RequestCancellation || req.LineID != "line-1" {
		t.Fatalf("request = %+v", req)
	}
	if req.Details.Reason != "Mudança de operadora" || req.Details.Feedback != "Preço alto" {
		t.Fatalf("details = %+v", req.Details)
	}

	if _, err := f.Next(ctx, ConfirmIntent{}); !errors.Is(err, domain.ErrFlowFinished) {
		t.Fatalf("event at protocol: %v", err)
	}
}

func TestCancellationAcceptOfferExitsWithoutCancelling(t *testing.T) {
	creator := &stubCreator{}
	f := NewCancellationFlow(creator, "cust-001", "line-1")
	ctx := context.Background()

	if _, err := f.Next(ctx, ConfirmIntent{}); err != nil {
		t.Fatalf("confirm intent: %v", err)
	}
	step, err := f.Next(ctx, AcceptOffer{})
	if err != nil {
		t.Fatalf("accept offer: %v", err)
	}
	if step != CancelStepRetentionOffer {
		t.Fatalf("accepting the offer advanced to %s", step)
	}
	if !f.Exited() || !f.OfferAccepted() {
		t.Fatalf("exited=%v offerAccepted=%v", f.Exited(), f.OfferAccepted())
	}
	if len(creator.created) != 0 {
		t.Fatal("cancellation was submitted despite the accepted offer")
	}
	if _, err := f.Next(ctx, DeclineOffer{}); !errors.Is(err, domain.ErrFlowFinished) {
		t.Fatalf("event after retention exit: %v", err)
	}
}

func TestCancellationRequiresReason(t *testing.T) {
	f := NewCancellationFlow(&stubCreator{}, "cust-001", "line-1")
	ctx := context.Background()
	for _, ev := range []CancellationEvent{ConfirmIntent{}, DeclineOffer{}, AcknowledgeFee{}} {
		if _, err := f.Next(ctx, ev); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	_, err := f.Next(ctx, SubmitReason{Reason: ""})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if f.Step() != CancelStepReason {
		t.Fatalf("step = %s", f.Step())
	}
}

func TestCancellationDataSurvivesSubmitFailure(t *testing.T) {
	creator := &stubCreator{err: domain.NewAPIError(domain.CodeNetworkError, "Sem conexão com a internet.")}
	f := NewCancellationFlow(creator, "cust-001", "line-1")
	ctx := context.Background()
	for _, ev := range []CancellationEvent{ConfirmIntent{}, DeclineOffer{}, AcknowledgeFee{}} {
		if _, err := f.Next(ctx, ev); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	_, err := f.Next(ctx, SubmitReason{Reason: "Mudança de cidade", Feedback: "ok"})
	if domain.ErrorCode(err) != domain.CodeNetworkError {
		t.Fatalf("want NETWORK_ERROR, got %v", err)
	}
	if f.Step() != CancelStepReason {
		t.Fatalf("step = %s, want to stay at REASON", f.Step())
	}

	// the typed reason survives for the retry
	data := f.Data()
	if data.Reason != "Mudança de cidade" || data.Feedback != "ok" {
		t.Fatalf("data = %+v", data)
	}

	creator.err = nil
	if step, err := f.Next(ctx, SubmitReason{Reason: "Mudança de cidade", Feedback: "ok"}); err != nil || step != CancelStepProtocol {
		t.Fatalf("retry: step=%s err=%v", step, err)
	}
}

func TestCancellationWrongEventRejected(t *testing.T) {
	f := NewCancellationFlow(&stubCreator{}, "cust-001", "line-1")

	_, err := f.Next(context.Background(), SubmitReason{Reason: "x"})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCancellationBackNavigation(t *testing.T) {
	f := NewCancellationFlow(&stubCreator{}, "cust-001", "line-1")
	ctx := context.Background()
	if _, err := f.Next(ctx, ConfirmIntent{}); err != nil {
		t.Fatalf("confirm intent: %v", err)
	}

	if step, exited := f.Back(); exited || step != CancelStepConfirmIntent {
		t.Fatalf("back: step=%s exited=%v", step, exited)
	}
	if _, exited := f.Back(); !exited {
		t.Fatal("back at initial step did not exit")
	}
	if !f.Exited() {
		t.Fatal("exited flag not set")
	}
}
