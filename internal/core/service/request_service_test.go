package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skymovel/app-core/internal/core/domain"
)

// memRepo is an in-memory ports.ServiceRequestRepository.
type memRepo struct {
	items     []domain.ServiceRequestHistoryItem
	insertErr error
	listErr   error
}

func (r *memRepo) Insert(_ context.Context, item *domain.ServiceRequestHistoryItem) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *memRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.ServiceRequestHistoryItem
	for _, it := range r.items {
		if it.CustomerID == customerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func requestGateway() *stubGateway {
	return &stubGateway{
		createFn: func(_ context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
			return &domain.ServiceRequestReceipt{
				RequestID: "sr-42",
				Protocol:  "SKY2026000042",
				Status:    domain.RequestPending,
				Message:   "Solicitação registrada com sucesso!",
			}, nil
		},
		historyFn: func(context.Context, string) ([]domain.ServiceRequestHistoryItem, error) {
			return nil, nil
		},
	}
}

func portabilityRequest() domain.ServiceRequest {
	return domain.ServiceRequest{
		Type:       domain.RequestPortability,
		CustomerID: "cust-001",
		LineID:     "line-1",
		Details:    domain.RequestDetails{NumberToPort: "11987654321", CurrentOperator: "Vivo"},
	}
}

func TestCreateRecordsAuditTrail(t *testing.T) {
	repo := &memRepo{}
	svc := NewRequestService(requestGateway(), repo, zerolog.Nop())

	receipt, err := svc.Create(context.Background(), portabilityRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if receipt.Protocol != "SKY2026000042" {
		t.Fatalf("protocol = %q", receipt.Protocol)
	}

	if len(repo.items) != 1 {
		t.Fatalf("audit items = %d", len(repo.items))
	}
	item := repo.items[0]
	if item.Protocol != "SKY2026000042" || item.CustomerID != "cust-001" {
		t.Fatalf("audit item = %+v", item)
	}
	if item.Description != "Portabilidade do número (11) 98765-4321" {
		t.Fatalf("description = %q", item.Description)
	}
}

func TestCreateSurvivesAuditFailure(t *testing.T) {
	repo := &memRepo{insertErr: errors.New("mongo down")}
	svc := NewRequestService(requestGateway(), repo, zerolog.Nop())

	receipt, err := svc.Create(context.Background(), portabilityRequest())
	if err != nil {
		t.Fatalf("audit failure must not lose the protocol: %v", err)
	}
	if receipt.Protocol == "" {
		t.Fatal("empty protocol")
	}
}

func profileWithLine(status domain.LineStatus) func(context.Context, string) (*domain.CustomerProfile, error) {
	return func(context.Context, string) (*domain.CustomerProfile, error) {
		return &domain.CustomerProfile{
			ID: "cust-001",
			MobileLines: []domain.MobileLine{
				{MSISDN: "11999990001", Status: status},
			},
		}, nil
	}
}

func blockRequest() domain.ServiceRequest {
	return domain.ServiceRequest{
		Type:       domain.RequestBlock,
		CustomerID: "cust-001",
		LineID:     "11999990001",
		Details:    domain.RequestDetails{Reason: "Aparelho roubado"},
	}
}

func TestCreateRejectsImpossibleLineTransition(t *testing.T) {
	gw := requestGateway()
	gw.profileFn = profileWithLine(domain.LineCancelled)
	boundaryCalled := false
	gw.createFn = func(context.Context, domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
		boundaryCalled = true
		return nil, nil
	}
	svc := NewRequestService(gw, &memRepo{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), blockRequest())
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want a validation rejection", err)
	}
	if ve.Field != "lineId" {
		t.Fatalf("field = %q", ve.Field)
	}
	if boundaryCalled {
		t.Fatal("rejected request still reached the boundary")
	}
}

func TestCreateAllowsValidLineTransition(t *testing.T) {
	gw := requestGateway()
	gw.profileFn = profileWithLine(domain.LineActive)
	svc := NewRequestService(gw, &memRepo{}, zerolog.Nop())

	receipt, err := svc.Create(context.Background(), blockRequest())
	if err != nil {
		t.Fatalf("block of an active line rejected: %v", err)
	}
	if receipt.Protocol == "" {
		t.Fatal("empty protocol")
	}
}

func TestCreateSkipsLineCheckWhenProfileUnavailable(t *testing.T) {
	gw := requestGateway()
	gw.profileFn = func(context.Context, string) (*domain.CustomerProfile, error) {
		return nil, domain.NewAPIError(domain.CodeNetworkError, "Sem conexão com a internet.")
	}
	svc := NewRequestService(gw, &memRepo{}, zerolog.Nop())

	// the carrier core applies the authoritative check, so a profile outage
	// must not block the request
	if _, err := svc.Create(context.Background(), blockRequest()); err != nil {
		t.Fatalf("create blocked by profile outage: %v", err)
	}
}

func TestCreatePropagatesBoundaryFailure(t *testing.T) {
	gw := requestGateway()
	gw.createFn = func(context.Context, domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
		return nil, domain.NewAPIError(domain.CodeNetworkError, "Sem conexão com a internet.")
	}
	repo := &memRepo{}
	svc := NewRequestService(gw, repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), portabilityRequest()); err == nil {
		t.Fatal("expected boundary failure")
	}
	if len(repo.items) != 0 {
		t.Fatal("failed request recorded in the audit trail")
	}
}

func TestHistoryMergesAndDeduplicatesByProtocol(t *testing.T) {
	now := time.Now()
	gw := requestGateway()
	gw.historyFn = func(context.Context, string) ([]domain.ServiceRequestHistoryItem, error) {
		return []domain.ServiceRequestHistoryItem{
			{Protocol: "SKY2026000001", CustomerID: "cust-001", CreatedAt: now.Add(-48 * time.Hour)},
			{Protocol: "SKY2026000002", CustomerID: "cust-001", CreatedAt: now.Add(-24 * time.Hour)},
		}, nil
	}
	repo := &memRepo{items: []domain.ServiceRequestHistoryItem{
		// duplicate of a remote entry plus one local-only entry
		{Protocol: "SKY2026000002", CustomerID: "cust-001", CreatedAt: now.Add(-24 * time.Hour)},
		{Protocol: "SKY2026000003", CustomerID: "cust-001", CreatedAt: now},
	}}
	svc := NewRequestService(gw, repo, zerolog.Nop())

	items, err := svc.History(context.Background(), "cust-001")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	// newest first
	if items[0].Protocol != "SKY2026000003" || items[2].Protocol != "SKY2026000001" {
		t.Fatalf("order = %s, %s, %s", items[0].Protocol, items[1].Protocol, items[2].Protocol)
	}
}

func TestHistoryToleratesAuditReadFailure(t *testing.T) {
	now := time.Now()
	gw := requestGateway()
	gw.historyFn = func(context.Context, string) ([]domain.ServiceRequestHistoryItem, error) {
		return []domain.ServiceRequestHistoryItem{
			{Protocol: "SKY2026000001", CustomerID: "cust-001", CreatedAt: now},
		}, nil
	}
	repo := &memRepo{listErr: errors.New("mongo down")}
	svc := NewRequestService(gw, repo, zerolog.Nop())

	items, err := svc.History(context.Background(), "cust-001")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want the remote projection alone", len(items))
	}
}

func TestHistoryWithoutRepository(t *testing.T) {
	gw := requestGateway()
	svc := NewRequestService(gw, nil, zerolog.Nop())

	if _, err := svc.History(context.Background(), "cust-001"); err != nil {
		t.Fatalf("history without repo: %v", err)
	}
	if _, err := svc.Create(context.Background(), portabilityRequest()); err != nil {
		t.Fatalf("create without repo: %v", err)
	}
}
