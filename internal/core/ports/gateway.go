package ports

import (
	"context"
	"time"

	"github.com/skymovel/app-core/internal/core/domain"
)

// LoginInput carries the credentials posted by the login screen.
type LoginInput struct {
	CPF      string
	Password string
	DeviceID string
}

// LoginCustomer is the customer summary returned alongside the tokens.
type LoginCustomer struct {
	ID          string
	Name        string
	ProfileType domain.ProfileType
}

// LoginResult holds the token pair and customer summary issued on login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Customer     LoginCustomer
}

// TokenPair is returned by a session refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UpdateProfileInput is a partial profile update; nil fields are unchanged.
type UpdateProfileInput struct {
	CustomerID string
	Email      *string
	Phone      *string
	Address    *domain.Address
}

// OperationResult is the generic success envelope for write operations.
type OperationResult struct {
	Success bool
	Message string
}

// ChangePlanInput requests a plan change. Empty EffectiveDate = immediate.
type ChangePlanInput struct {
	CustomerID    string
	NewPlanID     string
	EffectiveDate string
}

// ChangePlanResult acknowledges a plan change request.
type ChangePlanResult struct {
	RequestID string
	Status    string // PROCESSING | PENDING_APPROVAL | COMPLETED
	Message   string
}

// PurchaseDataPackageInput requests an add-on data bundle purchase.
type PurchaseDataPackageInput struct {
	CustomerID    string
	PackageID     string
	PaymentMethod string
	CardToken     string
}

// PurchaseResult acknowledges a data package purchase.
type PurchaseResult struct {
	TransactionID    string
	Status           string // SUCCESS | PENDING | FAILED
	NewDataBalanceGB float64
	Message          string
}

// ValidateChipResult reports whether an ICCID can be activated.
type ValidateChipResult struct {
	Valid        bool
	ChipStatus   string // NEW | ALREADY_ACTIVE | INVALID
	ErrorMessage string
}

// ActivateChipInput performs the terminal activation call of the chip flow.
type ActivateChipInput struct {
	ICCID                string
	CustomerID           string
	PlanID               string
	AcceptedTermsVersion string
}

// ActivateChipResult carries the number assigned to the activated chip.
type ActivateChipResult struct {
	Success        bool
	MSISDN         string
	ActivationDate time.Time
	Message        string
}

// SkyGateway is the service boundary to the SKY carrier core. The mock
// implementation simulates latency and returns canned payloads; the real
// implementation speaks JSON over HTTP. Every operation either returns a
// typed response or fails with a *domain.APIError.
type SkyGateway interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
	RefreshSession(ctx context.Context, refreshToken string) (*TokenPair, error)

	GetCustomerProfile(ctx context.Context, customerID string) (*domain.CustomerProfile, error)
	UpdateCustomerProfile(ctx context.Context, in UpdateProfileInput) (*OperationResult, error)
	GetConsumption(ctx context.Context, customerID string) (*domain.ConsumptionSnapshot, error)

	GetCurrentPlan(ctx context.Context, customerID string) (*domain.CustomerPlan, error)
	GetAvailablePlans(ctx context.Context) ([]domain.AvailablePlan, error)
	ChangePlan(ctx context.Context, in ChangePlanInput) (*ChangePlanResult, error)
	GetDataPackages(ctx context.Context) ([]domain.DataPackage, error)
	PurchaseDataPackage(ctx context.Context, in PurchaseDataPackageInput) (*PurchaseResult, error)

	GetInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error)
	ChangeDueDate(ctx context.Context, customerID string, newDueDay int) (*OperationResult, error)
	ChangePaymentMethod(ctx context.Context, customerID string, method domain.PaymentMethod, cardToken string) (*OperationResult, error)

	GetNotifications(ctx context.Context, customerID string) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, customerID, notificationID string) error

	CreateServiceRequest(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error)
	GetServiceRequestHistory(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error)
	ValidateChip(ctx context.Context, iccid string) (*ValidateChipResult, error)
	ActivateChip(ctx context.Context, in ActivateChipInput) (*ActivateChipResult, error)
}
