// Package gateway provides decorators shared by the carrier gateway
// implementations.
package gateway

import (
	"context"
	"time"

	"github.com/skymovel/app-core/internal/api/metrics"
	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// Instrumented wraps a SkyGateway and records a Prometheus counter and
// histogram per call. The result label is "ok" or the domain error code.
type Instrumented struct {
	next ports.SkyGateway
}

func Instrument(next ports.SkyGateway) *Instrumented {
	return &Instrumented{next: next}
}

func observe(op string, start time.Time, err error) {
	metrics.GatewayCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		if result = domain.ErrorCode(err); result == "" {
			result = "error"
		}
	}
	metrics.GatewayCallsTotal.WithLabelValues(op, result).Inc()
}

func (g *Instrumented) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	start := time.Now()
	res, err := g.next.Login(ctx, in)
	observe("Login", start, err)
	return res, err
}

func (g *Instrumented) Logout(ctx context.Context, accessToken string) error {
	start := time.Now()
	err := g.next.Logout(ctx, accessToken)
	observe("Logout", start, err)
	return err
}

func (g *Instrumented) RefreshSession(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	start := time.Now()
	res, err := g.next.RefreshSession(ctx, refreshToken)
	observe("RefreshSession", start, err)
	return res, err
}

func (g *Instrumented) GetCustomerProfile(ctx context.Context, customerID string) (*domain.CustomerProfile, error) {
	start := time.Now()
	res, err := g.next.GetCustomerProfile(ctx, customerID)
	observe("GetCustomerProfile", start, err)
	return res, err
}

func (g *Instrumented) UpdateCustomerProfile(ctx context.Context, in ports.UpdateProfileInput) (*ports.OperationResult, error) {
	start := time.Now()
	res, err := g.next.UpdateCustomerProfile(ctx, in)
	observe("UpdateCustomerProfile", start, err)
	return res, err
}

func (g *Instrumented) GetConsumption(ctx context.Context, customerID string) (*domain.ConsumptionSnapshot, error) {
	start := time.Now()
	res, err := g.next.GetConsumption(ctx, customerID)
	observe("GetConsumption", start, err)
	return res, err
}

func (g *Instrumented) GetCurrentPlan(ctx context.Context, customerID string) (*domain.CustomerPlan, error) {
	start := time.Now()
	res, err := g.next.GetCurrentPlan(ctx, customerID)
	observe("GetCurrentPlan", start, err)
	return res, err
}

func (g *Instrumented) GetAvailablePlans(ctx context.Context) ([]domain.AvailablePlan, error) {
	start := time.Now()
	res, err := g.next.GetAvailablePlans(ctx)
	observe("GetAvailablePlans", start, err)
	return res, err
}

func (g *Instrumented) ChangePlan(ctx context.Context, in ports.ChangePlanInput) (*ports.ChangePlanResult, error) {
	start := time.Now()
	res, err := g.next.ChangePlan(ctx, in)
	observe("ChangePlan", start, err)
	return res, err
}

func (g *Instrumented) GetDataPackages(ctx context.Context) ([]domain.DataPackage, error) {
	start := time.Now()
	res, err := g.next.GetDataPackages(ctx)
	observe("GetDataPackages", start, err)
	return res, err
}

func (g *Instrumented) PurchaseDataPackage(ctx context.Context, in ports.PurchaseDataPackageInput) (*ports.PurchaseResult, error) {
	start := time.Now()
	res, err := g.next.PurchaseDataPackage(ctx, in)
	observe("PurchaseDataPackage", start, err)
	return res, err
}

func (g *Instrumented) GetInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	start := time.Now()
	res, err := g.next.GetInvoices(ctx, customerID)
	observe("GetInvoices", start, err)
	return res, err
}

func (g *Instrumented) ChangeDueDate(ctx context.Context, customerID string, newDueDay int) (*ports.OperationResult, error) {
	start := time.Now()
	res, err := g.next.ChangeDueDate(ctx, customerID, newDueDay)
	observe("ChangeDueDate", start, err)
	return res, err
}

func (g *Instrumented) ChangePaymentMethod(ctx context.Context, customerID string, method domain.PaymentMethod, cardToken string) (*ports.OperationResult, error) {
	start := time.Now()
	res, err := g.next.ChangePaymentMethod(ctx, customerID, method, cardToken)
	observe("ChangePaymentMethod", start, err)
	return res, err
}

func (g *Instrumented) GetNotifications(ctx context.Context, customerID string) ([]domain.Notification, error) {
	start := time.Now()
	res, err := g.next.GetNotifications(ctx, customerID)
	observe("GetNotifications", start, err)
	return res, err
}

func (g *Instrumented) MarkNotificationRead(ctx context.Context, customerID, notificationID string) error {
	start := time.Now()
	err := g.next.MarkNotificationRead(ctx, customerID, notificationID)
	observe("MarkNotificationRead", start, err)
	return err
}

func (g *Instrumented) CreateServiceRequest(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
	start := time.Now()
	res, err := g.next.CreateServiceRequest(ctx, req)
	observe("CreateServiceRequest", start, err)
	return res, err
}

func (g *Instrumented) GetServiceRequestHistory(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error) {
	start := time.Now()
	res, err := g.next.GetServiceRequestHistory(ctx, customerID)
	observe("GetServiceRequestHistory", start, err)
	return res, err
}

func (g *Instrumented) ValidateChip(ctx context.Context, iccid string) (*ports.ValidateChipResult, error) {
	start := time.Now()
	res, err := g.next.ValidateChip(ctx, iccid)
	observe("ValidateChip", start, err)
	return res, err
}

func (g *Instrumented) ActivateChip(ctx context.Context, in ports.ActivateChipInput) (*ports.ActivateChipResult, error) {
	start := time.Now()
	res, err := g.next.ActivateChip(ctx, in)
	observe("ActivateChip", start, err)
	return res, err
}
