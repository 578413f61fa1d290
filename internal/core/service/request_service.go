package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
	"github.com/skymovel/app-core/pkg/format"
)

// RequestService creates service requests through the boundary and keeps a
// local audit trail of everything created by this process. History reads
// merge the boundary's projection with the audit trail.
type RequestService struct {
	gw   ports.SkyGateway
	repo ports.ServiceRequestRepository // optional
	log  zerolog.Logger
}

func NewRequestService(gw ports.SkyGateway, repo ports.ServiceRequestRepository, log zerolog.Logger) *RequestService {
	return &RequestService{gw: gw, repo: repo, log: log}
}

// Create submits the request and records it locally. The audit insert is
// non-fatal: a failing repository never loses the customer's protocol.
func (s *RequestService) Create(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
	if target, ok := req.Type.TargetLineStatus(); ok {
		if err := s.checkLineTransition(ctx, req.CustomerID, req.LineID, target); err != nil {
			return nil, err
		}
	}

	receipt, err := s.gw.CreateServiceRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		item := historyItem(req, receipt)
		if insErr := s.repo.Insert(ctx, &item); insErr != nil {
			s.log.Warn().Err(insErr).Str("protocol", receipt.Protocol).Msg("failed to record service request")
		}
	}

	s.log.Info().
		Str("protocol", receipt.Protocol).
		Str("type", string(req.Type)).
		Str("customer_id", req.CustomerID).
		Msg("service request created")

	return receipt, nil
}

// History returns the boundary's read-only projection merged with locally
// recorded requests, newest first. Entries are deduplicated by protocol.
func (s *RequestService) History(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error) {
	remote, err := s.gw.GetServiceRequestHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := remote
	if s.repo != nil {
		local, err := s.repo.ListByCustomer(ctx, customerID)
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to read local request history")
		} else {
			seen := make(map[string]struct{}, len(remote))
			for _, it := range remote {
				seen[it.Protocol] = struct{}{}
			}
			for _, it := range local {
				if _, dup := seen[it.Protocol]; !dup {
					items = append(items, it)
				}
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// checkLineTransition rejects status-changing requests the carrier core would
// refuse anyway, using the line's current status from the profile. A failed
// profile read skips the check; the core applies the authoritative one.
func (s *RequestService) checkLineTransition(ctx context.Context, customerID, lineID string, target domain.LineStatus) error {
	profile, err := s.gw.GetCustomerProfile(ctx, customerID)
	if err != nil {
		s.log.Warn().Err(err).Str("line_id", lineID).Msg("line status check skipped, profile unavailable")
		return nil
	}
	for _, line := range profile.MobileLines {
		if line.MSISDN != lineID {
			continue
		}
		if !line.Status.CanTransitionTo(target) {
			return &domain.ValidationError{
				Field:  "lineId",
				Reason: "Operação não disponível para o status atual da linha.",
			}
		}
		break
	}
	return nil
}

func historyItem(req domain.ServiceRequest, receipt *domain.ServiceRequestReceipt) domain.ServiceRequestHistoryItem {
	now := time.Now().UTC()
	return domain.ServiceRequestHistoryItem{
		ID:          receipt.RequestID,
		Protocol:    receipt.Protocol,
		CustomerID:  req.CustomerID,
		Type:        req.Type,
		Status:      receipt.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
		Description: describeRequest(req),
	}
}

// describeRequest builds the human-readable line shown in the history list.
func describeRequest(req domain.ServiceRequest) string {
	switch req.Type {
	case domain.RequestPortability:
		return "Portabilidade do número " + format.Phone(req.Details.NumberToPort)
	case domain.RequestChipSwap:
		return "Troca de chip - Motivo: " + swapReasonLabel(req.Details.SwapReason)
	case domain.RequestBlock:
		return "Bloqueio de linha"
	case domain.RequestUnblock:
		return "Desbloqueio de linha"
	case domain.RequestCancellation:
		return "Cancelamento - Motivo: " + req.Details.Reason
	default:
		return string(req.Type)
	}
}

func swapReasonLabel(reason domain.ChipSwapReason) string {
	switch reason {
	case domain.SwapLost:
		return "Perda"
	case domain.SwapStolen:
		return "Roubo"
	case domain.SwapDefective:
		return "Defeito"
	case domain.SwapESIMUpgrade:
		return "Upgrade para eSIM"
	default:
		return string(reason)
	}
}
