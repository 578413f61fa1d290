// Package mock implements the SKY service boundary with canned payloads and
// simulated network latency. Line status transitions are acknowledged but
// never applied to subsequent profile fetches; clients tolerate the stale
// status until the next real sync.
package mock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
	"github.com/skymovel/app-core/pkg/format"
)

// Latency weights relative to the base delay (default 800ms):
// trivial acknowledgments run at ~300ms, heavy writes up to 2000ms.
const (
	weightRead     = 1.0
	weightAck      = 0.375 // 300ms at the default base
	weightRequest  = 1.5   // 1200ms
	weightPurchase = 1.875 // 1500ms
	weightActivate = 2.5   // 2000ms
)

const defaultBaseDelay = 800 * time.Millisecond

// Gateway is the mock ports.SkyGateway. Safe for concurrent use: all state
// is immutable fixture data.
type Gateway struct {
	baseDelay time.Duration
}

// New returns a mock gateway with the given base latency. A zero baseDelay
// disables the simulated latency entirely (used by tests); pass a negative
// value to get the default 800ms.
func New(baseDelay time.Duration) *Gateway {
	if baseDelay < 0 {
		baseDelay = defaultBaseDelay
	}
	return &Gateway{baseDelay: baseDelay}
}

// delay suspends for weight×baseDelay, honoring context cancellation.
func (g *Gateway) delay(ctx context.Context, weight float64) error {
	if g.baseDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(float64(g.baseDelay) * weight))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (g *Gateway) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	if format.Digits(in.CPF) == demoCPF && len(in.Password) >= minPasswordLength {
		res := demoLogin
		return &res, nil
	}
	return nil, domain.NewAPIError(domain.CodeAuthInvalid, "CPF ou senha inválidos.")
}

func (g *Gateway) Logout(ctx context.Context, _ string) error {
	return g.delay(ctx, weightAck)
}

func (g *Gateway) RefreshSession(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if err := g.delay(ctx, weightAck); err != nil {
		return nil, err
	}
	if refreshToken != demoLogin.RefreshToken {
		return nil, domain.NewAPIError(domain.CodeAuthExpired, "Sessão expirada. Faça login novamente.")
	}
	return &ports.TokenPair{
		AccessToken:  demoLogin.AccessToken,
		RefreshToken: demoLogin.RefreshToken,
	}, nil
}

func (g *Gateway) GetCustomerProfile(ctx context.Context, _ string) (*domain.CustomerProfile, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	profile := demoProfile
	profile.MobileLines = append([]domain.MobileLine(nil), demoProfile.MobileLines...)
	return &profile, nil
}

func (g *Gateway) UpdateCustomerProfile(ctx context.Context, _ ports.UpdateProfileInput) (*ports.OperationResult, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return &ports.OperationResult{Success: true, Message: "Perfil atualizado com sucesso!"}, nil
}

func (g *Gateway) GetConsumption(ctx context.Context, _ string) (*domain.ConsumptionSnapshot, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	snapshot := demoConsumption
	return &snapshot, nil
}

func (g *Gateway) GetCurrentPlan(ctx context.Context, _ string) (*domain.CustomerPlan, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	plan := demoCurrentPlan
	plan.IncludedApps = append([]string(nil), demoCurrentPlan.IncludedApps...)
	return &plan, nil
}

func (g *Gateway) GetAvailablePlans(ctx context.Context) ([]domain.AvailablePlan, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return append([]domain.AvailablePlan(nil), demoAvailablePlans...), nil
}

func (g *Gateway) ChangePlan(ctx context.Context, in ports.ChangePlanInput) (*ports.ChangePlanResult, error) {
	if err := g.delay(ctx, weightRequest); err != nil {
		return nil, err
	}
	return &ports.ChangePlanResult{
		RequestID: "req-" + uuid.NewString(),
		Status:    "COMPLETED",
		Message:   "Plano alterado com sucesso! As mudanças serão aplicadas no próximo ciclo.",
	}, nil
}

func (g *Gateway) GetDataPackages(ctx context.Context) ([]domain.DataPackage, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return append([]domain.DataPackage(nil), demoDataPackages...), nil
}

func (g *Gateway) PurchaseDataPackage(ctx context.Context, in ports.PurchaseDataPackageInput) (*ports.PurchaseResult, error) {
	if err := g.delay(ctx, weightPurchase); err != nil {
		return nil, err
	}
	return &ports.PurchaseResult{
		TransactionID:    "txn-" + uuid.NewString(),
		Status:           "SUCCESS",
		NewDataBalanceGB: 20,
		Message:          "Pacote de dados adicionado com sucesso!",
	}, nil
}

func (g *Gateway) GetInvoices(ctx context.Context, _ string) ([]domain.Invoice, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return append([]domain.Invoice(nil), demoInvoices...), nil
}

func (g *Gateway) ChangeDueDate(ctx context.Context, _ string, newDueDay int) (*ports.OperationResult, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return &ports.OperationResult{
		Success: true,
		Message: fmt.Sprintf("Vencimento alterado para dia %d com sucesso!", newDueDay),
	}, nil
}

func (g *Gateway) ChangePaymentMethod(ctx context.Context, _ string, _ domain.PaymentMethod, _ string) (*ports.OperationResult, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return &ports.OperationResult{Success: true, Message: "Forma de pagamento alterada com sucesso!"}, nil
}

func (g *Gateway) GetNotifications(ctx context.Context, _ string) ([]domain.Notification, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return append([]domain.Notification(nil), demoNotifications...), nil
}

func (g *Gateway) MarkNotificationRead(ctx context.Context, _, _ string) error {
	return g.delay(ctx, weightAck)
}

func (g *Gateway) CreateServiceRequest(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
	if err := g.delay(ctx, weightRequest); err != nil {
		return nil, err
	}
	now := time.Now()
	return &domain.ServiceRequestReceipt{
		RequestID:           "sr-" + uuid.NewString(),
		Protocol:            protocol(now),
		Status:              domain.RequestPending,
		EstimatedCompletion: now.Add(3 * 24 * time.Hour),
		Message:             "Solicitação registrada com sucesso!",
	}, nil
}

func (g *Gateway) GetServiceRequestHistory(ctx context.Context, _ string) ([]domain.ServiceRequestHistoryItem, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	return append([]domain.ServiceRequestHistoryItem(nil), demoRequestHistory...), nil
}

// ValidateChip accepts ICCIDs of exactly 20 digits starting with 8955.
func (g *Gateway) ValidateChip(ctx context.Context, iccid string) (*ports.ValidateChipResult, error) {
	if err := g.delay(ctx, weightRead); err != nil {
		return nil, err
	}
	if len(iccid) == 20 && strings.HasPrefix(iccid, "8955") {
		return &ports.ValidateChipResult{Valid: true, ChipStatus: "NEW"}, nil
	}
	return &ports.ValidateChipResult{Valid: false, ChipStatus: "INVALID", ErrorMessage: "ICCID inválido."}, nil
}

func (g *Gateway) ActivateChip(ctx context.Context, in ports.ActivateChipInput) (*ports.ActivateChipResult, error) {
	if err := g.delay(ctx, weightActivate); err != nil {
		return nil, err
	}
	return &ports.ActivateChipResult{
		Success:        true,
		MSISDN:         "11999990002",
		ActivationDate: time.Now(),
		Message:        "Chip ativado com sucesso! Sua nova linha está pronta para uso.",
	}, nil
}

// protocol builds the human-readable tracking code: SKY + year + a
// six-digit sequence derived from the creation instant.
func protocol(now time.Time) string {
	return fmt.Sprintf("SKY%d%06d", now.Year(), now.UnixMilli()%1000000)
}
