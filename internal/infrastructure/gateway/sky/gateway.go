// Package sky is the real HTTP implementation of the service boundary. It
// mirrors the mobile client's transport layer: bearer authentication, a
// normalized error envelope, and NETWORK_ERROR on transport failures.
package sky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the bearer token attached to every request. Satisfied
// by the session store; an empty token sends the request unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Config captures the settings for the SKY core gateway.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
}

// Gateway implements ports.SkyGateway over HTTP.
type Gateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
}

func New(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		tokens:  cfg.Tokens,
	}
}

// SetTokenSource installs the token source after construction. Needed because
// the session service and the gateway reference each other; call before the
// server starts serving.
func (g *Gateway) SetTokenSource(ts TokenSource) {
	g.tokens = ts
}

// errorEnvelope is the error body returned by the SKY core.
type errorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// do performs a JSON call and decodes the response into out (when non-nil).
// Error normalization follows the mobile client contract:
//   - 401 → AUTH_EXPIRED with a fixed re-login message
//   - other non-2xx → the body's {code,message,details} or HTTP_<status>
//   - transport failure → NETWORK_ERROR with a fixed connectivity message
func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.tokens != nil {
		if token := g.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.NewAPIError(domain.CodeNetworkError,
			"Sem conexão com a internet. Verifique sua conexão e tente novamente.")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.NewAPIError(domain.CodeAuthExpired, "Sessão expirada. Faça login novamente.")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Code == "" {
			envelope.Code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		}
		if envelope.Message == "" {
			envelope.Message = "Erro ao comunicar com o servidor."
		}
		return &domain.APIError{Code: envelope.Code, Message: envelope.Message, Details: envelope.Details}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *Gateway) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	body := map[string]string{"cpf": in.CPF, "password": in.Password, "deviceId": in.DeviceID}
	var res struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		Customer     struct {
			ID          string             `json:"id"`
			Name        string             `json:"name"`
			ProfileType domain.ProfileType `json:"profileType"`
		} `json:"customer"`
	}
	if err := g.do(ctx, http.MethodPost, "/auth/login", body, &res); err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		Customer: ports.LoginCustomer{
			ID:          res.Customer.ID,
			Name:        res.Customer.Name,
			ProfileType: res.Customer.ProfileType,
		},
	}, nil
}

func (g *Gateway) Logout(ctx context.Context, _ string) error {
	return g.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// RefreshSession is not wired yet.
// TODO: implement automatic token refresh against POST /auth/refresh once
// the SKY core publishes the rotation semantics for refresh tokens.
func (g *Gateway) RefreshSession(_ context.Context, _ string) (*ports.TokenPair, error) {
	return nil, domain.ErrNotImplemented
}

func (g *Gateway) GetCustomerProfile(ctx context.Context, customerID string) (*domain.CustomerProfile, error) {
	var profile domain.CustomerProfile
	if err := g.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (g *Gateway) UpdateCustomerProfile(ctx context.Context, in ports.UpdateProfileInput) (*ports.OperationResult, error) {
	body := map[string]any{}
	if in.Email != nil {
		body["email"] = *in.Email
	}
	if in.Phone != nil {
		body["phone"] = *in.Phone
	}
	if in.Address != nil {
		body["address"] = in.Address
	}
	var res ports.OperationResult
	err := g.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(in.CustomerID)+"/profile", body, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (g *Gateway) GetConsumption(ctx context.Context, customerID string) (*domain.ConsumptionSnapshot, error) {
	var snapshot domain.ConsumptionSnapshot
	if err := g.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/consumption", nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (g *Gateway) GetCurrentPlan(ctx context.Context, customerID string) (*domain.CustomerPlan, error) {
	var plan domain.CustomerPlan
	if err := g.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/plan", nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (g *Gateway) GetAvailablePlans(ctx context.Context) ([]domain.AvailablePlan, error) {
	var plans []domain.AvailablePlan
	if err := g.do(ctx, http.MethodGet, "/plans/available", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (g *Gateway) ChangePlan(ctx context.Context, in ports.ChangePlanInput) (*ports.ChangePlanResult, error) {
	body := map[string]string{"newPlanId": in.NewPlanID}
	if in.EffectiveDate != "" {
		body["effectiveDate"] = in.EffectiveDate
	}
	var res struct {
		RequestID string `json:"requestId"`
		Status    string `json:"status"`
		Message   string `json:"message"`
	}
	if err := g.do(ctx, http.MethodPost, "/customers/"+url.PathEscape(in.CustomerID)+"/plan/change", body, &res); err != nil {
		return nil, err
	}
	return &ports.ChangePlanResult{RequestID: res.RequestID, Status: res.Status, Message: res.Message}, nil
}

func (g *Gateway) GetDataPackages(ctx context.Context) ([]domain.DataPackage, error) {
	var packages []domain.DataPackage
	if err := g.do(ctx, http.MethodGet, "/data-packages/available", nil, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (g *Gateway) PurchaseDataPackage(ctx context.Context, in ports.PurchaseDataPackageInput) (*ports.PurchaseResult, error) {
	body := map[string]string{"packageId": in.PackageID, "paymentMethod": in.PaymentMethod}
	if in.CardToken != "" {
		body["cardToken"] = in.CardToken
	}
	var res struct {
		TransactionID    string  `json:"transactionId"`
		Status           string  `json:"status"`
		NewDataBalanceGB float64 `json:"newDataBalance"`
		Message          string  `json:"message"`
	}
	if err := g.do(ctx, http.MethodPost, "/customers/"+url.PathEscape(in.CustomerID)+"/data-packages/purchase", body, &res); err != nil {
		return nil, err
	}
	return &ports.PurchaseResult{
		TransactionID:    res.TransactionID,
		Status:           res.Status,
		NewDataBalanceGB: res.NewDataBalanceGB,
		Message:          res.Message,
	}, nil
}

func (g *Gateway) GetInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := g.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/invoices", nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (g *Gateway) ChangeDueDate(ctx context.Context, customerID string, newDueDay int) (*ports.OperationResult, error) {
	var res ports.OperationResult
	err := g.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(customerID)+"/billing/due-date",
		map[string]int{"newDueDay": newDueDay}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (g *Gateway) ChangePaymentMethod(ctx context.Context, customerID string, method domain.PaymentMethod, cardToken string) (*ports.OperationResult, error) {
	body := map[string]string{"method": string(method)}
	if cardToken != "" {
		body["cardToken"] = cardToken
	}
	var res ports.OperationResult
	err := g.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(customerID)+"/billing/payment-method", body, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (g *Gateway) GetNotifications(ctx context.Context, customerID string) ([]domain.Notification, error) {
	var notifs []domain.Notification
	if err := g.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/notifications", nil, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

func (g *Gateway) MarkNotificationRead(ctx context.Context, customerID, notificationID string) error {
	path := "/customers/" + url.PathEscape(customerID) + "/notifications/" + url.PathEscape(notificationID) + "/read"
	return g.do(ctx, http.MethodPost, path, nil, nil)
}

func (g *Gateway) CreateServiceRequest(ctx context.Context, req domain.ServiceRequest) (*domain.ServiceRequestReceipt, error) {
	var receipt domain.ServiceRequestReceipt
	if err := g.do(ctx, http.MethodPost, "/service-requests", req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (g *Gateway) GetServiceRequestHistory(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error) {
	var res struct {
		Requests []domain.ServiceRequestHistoryItem `json:"requests"`
	}
	if err := g.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/service-requests", nil, &res); err != nil {
		return nil, err
	}
	return res.Requests, nil
}

func (g *Gateway) ValidateChip(ctx context.Context, iccid string) (*ports.ValidateChipResult, error) {
	var res struct {
		Valid        bool   `json:"valid"`
		ChipStatus   string `json:"chipStatus"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := g.do(ctx, http.MethodPost, "/activation/validate-chip", map[string]string{"iccid": iccid}, &res); err != nil {
		return nil, err
	}
	return &ports.ValidateChipResult{Valid: res.Valid, ChipStatus: res.ChipStatus, ErrorMessage: res.ErrorMessage}, nil
}

func (g *Gateway) ActivateChip(ctx context.Context, in ports.ActivateChipInput) (*ports.ActivateChipResult, error) {
	body := map[string]string{
		"iccid":                in.ICCID,
		"customerId":           in.CustomerID,
		"planId":               in.PlanID,
		"acceptedTermsVersion": in.AcceptedTermsVersion,
	}
	var res struct {
		Success        bool      `json:"success"`
		MSISDN         string    `json:"msisdn"`
		ActivationDate time.Time `json:"activationDate"`
		Message        string    `json:"message"`
	}
	if err := g.do(ctx, http.MethodPost, "/activation/activate", body, &res); err != nil {
		return nil, err
	}
	return &ports.ActivateChipResult{
		Success:        res.Success,
		MSISDN:         res.MSISDN,
		ActivationDate: res.ActivationDate,
		Message:        res.Message,
	}, nil
}
