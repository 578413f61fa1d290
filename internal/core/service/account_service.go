package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// AccountService covers the account self-service operations: plan catalog and
// changes, data package purchases, billing adjustments and profile updates.
// After a successful write it refreshes the affected cache slice so the next
// snapshot already reflects the change.
type AccountService struct {
	gw    ports.SkyGateway
	cache *CustomerCache
	log   zerolog.Logger
}

func NewAccountService(gw ports.SkyGateway, cache *CustomerCache, log zerolog.Logger) *AccountService {
	return &AccountService{gw: gw, cache: cache, log: log}
}

func (s *AccountService) AvailablePlans(ctx context.Context) ([]domain.AvailablePlan, error) {
	return s.gw.GetAvailablePlans(ctx)
}

func (s *AccountService) ChangePlan(ctx context.Context, in ports.ChangePlanInput) (*ports.ChangePlanResult, error) {
	res, err := s.gw.ChangePlan(ctx, in)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("customer_id", in.CustomerID).
		Str("new_plan_id", in.NewPlanID).
		Str("request_id", res.RequestID).
		Msg("plan change requested")

	s.cache.RefreshPlan(ctx)
	return res, nil
}

func (s *AccountService) DataPackages(ctx context.Context) ([]domain.DataPackage, error) {
	return s.gw.GetDataPackages(ctx)
}

func (s *AccountService) PurchaseDataPackage(ctx context.Context, in ports.PurchaseDataPackageInput) (*ports.PurchaseResult, error) {
	res, err := s.gw.PurchaseDataPackage(ctx, in)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("customer_id", in.CustomerID).
		Str("package_id", in.PackageID).
		Str("transaction_id", res.TransactionID).
		Msg("data package purchased")

	s.cache.RefreshConsumption(ctx)
	return res, nil
}

func (s *AccountService) Invoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	return s.gw.GetInvoices(ctx, customerID)
}

func (s *AccountService) ChangeDueDate(ctx context.Context, customerID string, newDueDay int) (*ports.OperationResult, error) {
	return s.gw.ChangeDueDate(ctx, customerID, newDueDay)
}

func (s *AccountService) ChangePaymentMethod(ctx context.Context, customerID string, method domain.PaymentMethod, cardToken string) (*ports.OperationResult, error) {
	return s.gw.ChangePaymentMethod(ctx, customerID, method, cardToken)
}

func (s *AccountService) Profile(ctx context.Context, customerID string) (*domain.CustomerProfile, error) {
	return s.gw.GetCustomerProfile(ctx, customerID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*ports.OperationResult, error) {
	res, err := s.gw.UpdateCustomerProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	// the profile slice is part of the aggregate load only; reload it so the
	// cached copy does not serve the pre-update values
	s.cache.LoadCustomerData(ctx)
	return res, nil
}
