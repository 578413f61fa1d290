package ports

import (
	"context"

	"github.com/skymovel/app-core/internal/core/domain"
)

// ServiceRequestRepository persists an audit trail of requests created
// through this process. History reads merge it with the boundary's own
// projection.
type ServiceRequestRepository interface {
	Insert(ctx context.Context, item *domain.ServiceRequestHistoryItem) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error)
}
