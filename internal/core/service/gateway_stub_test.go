package service

import (
	"context"
	"sync"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// stubGateway satisfies ports.SkyGateway through the embedded interface;
// tests override only the methods they exercise. Calling an unset method
// panics, which is exactly what a test escaping its scenario deserves.
type stubGateway struct {
	ports.SkyGateway

	loginFn        func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	logoutFn       func(ctx context.Context, token string) error
	profileFn      func(ctx context.Context, customerID string) (*domain.CustomerProfile, error)
	consumptionFn  func(ctx context.Context, customerID string) (*domain.ConsumptionSnapshot, error)
	planFn         func(ctx context.Context, customerID string) (*domain.CustomerPlan, error)
	notificationFn func(ctx context.Context, customerID string) ([]domain.Notification, error)
	markReadFn     func(ctx context.Context, customerID, notificationID string) error
	validateChipFn func(ctx context.Context, iccid string) (*ports.ValidateChipResult, error)
	activateChipFn func(ctx context.Context, in ports.ActivateChipInput) (*ports.ActivateChipResult, error)
	createFn       func(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error)
	historyFn      func(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error)
}

func (s *stubGateway) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubGateway) Logout(ctx context.Context, token string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token)
}

func (s *stubGateway) GetCustomerProfile(ctx context.Context, customerID string) (*domain.CustomerProfile, error) {
	return s.profileFn(ctx, customerID)
}

func (s *stubGateway) GetConsumption(ctx context.Context, customerID string) (*domain.ConsumptionSnapshot, error) {
	return s.consumptionFn(ctx, customerID)
}

func (s *stubGateway) GetCurrentPlan(ctx context.Context, customerID string) (*domain.CustomerPlan, error) {
	return s.planFn(ctx, customerID)
}

func (s *stubGateway) GetNotifications(ctx context.Context, customerID string) ([]domain.Notification, error) {
	return s.notificationFn(ctx, customerID)
}

func (s *stubGateway) MarkNotificationRead(ctx context.Context, customerID, notificationID string) error {
	if s.markReadFn == nil {
		return nil
	}
	return s.markReadFn(ctx, customerID, notificationID)
}

func (s *stubGateway) ValidateChip(ctx context.Context, iccid string) (*ports.ValidateChipResult, error) {
	return s.validateChipFn(ctx, iccid)
}

func (s *stubGateway) ActivateChip(ctx context.Context, in ports.ActivateChipInput) (*ports.ActivateChipResult, error) {
	return s.activateChipFn(ctx, in)
}

func (s *stubGateway) CreateServiceRequest(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
	return s.createFn(ctx, req)
}

func (s *stubGateway) GetServiceRequestHistory(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error) {
	return s.historyFn(ctx, customerID)
}

// memKV is an in-memory ports.KeyValue.
type memKV struct {
	mu     sync.Mutex
	m      map[string]string
	setErr error
	delErr error
}

func newMemKV() *memKV {
	return &memKV{m: make(map[string]string)}
}

func (kv *memKV) Get(_ context.Context, key string) (string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.m[key], nil
}

func (kv *memKV) Set(_ context.Context, key, value string) error {
	if kv.setErr != nil {
		return kv.setErr
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}

func (kv *memKV) Delete(_ context.Context, keys ...string) error {
	if kv.delErr != nil {
		return kv.delErr
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	for _, k := range keys {
		delete(kv.m, k)
	}
	return nil
}

// fixedCustomer satisfies customerSource with a constant id.
type fixedCustomer string

func (f fixedCustomer) CustomerID() string { return string(f) }
