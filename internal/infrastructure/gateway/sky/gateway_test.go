package sky

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*Gateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Tokens: staticTokens("tok-abc")}), srv
}

func TestLoginDecodesResponse(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["cpf"] != "12345678900" {
			t.Errorf("cpf = %q", body["cpf"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken":  "tok-1",
			"refreshToken": "ref-1",
			"customer": map[string]string{
				"id":          "cust-001",
				"name":        "Carlos Eduardo Silva",
				"profileType": "SKY_MOVEL_SOLO",
			},
		})
	})

	res, err := gw.Login(context.Background(), ports.LoginInput{CPF: "12345678900", Password: "1234"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken != "tok-1" || res.Customer.ID != "cust-001" {
		t.Fatalf("result = %+v", res)
	}
	if res.Customer.ProfileType != domain.ProfileSolo {
		t.Fatalf("profile type = %q", res.Customer.ProfileType)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(domain.ConsumptionSnapshot{DaysRemaining: 5})
	})

	snap, err := gw.GetConsumption(context.Background(), "cust-001")
	if err != nil {
		t.Fatalf("consumption: %v", err)
	}
	if snap.DaysRemaining != 5 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestUnauthorizedMapsToAuthExpired(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := gw.GetInvoices(context.Background(), "cust-001")
	if domain.ErrorCode(err) != domain.CodeAuthExpired {
		t.Fatalf("want AUTH_EXPIRED, got %v", err)
	}
}

func TestErrorEnvelopePassedThrough(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    "PLAN_UNAVAILABLE",
			"message": "Plano indisponível para esta linha.",
			"details": map[string]string{"planId": "plan-9"},
		})
	})

	_, err := gw.ChangePlan(context.Background(), ports.ChangePlanInput{CustomerID: "cust-001", NewPlanID: "plan-9"})
	ae, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("want APIError, got %v", err)
	}
	if ae.Code != "PLAN_UNAVAILABLE" || ae.Message != "Plano indisponível para esta linha." {
		t.Fatalf("envelope = %+v", ae)
	}
	if ae.Details["planId"] != "plan-9" {
		t.Fatalf("details = %+v", ae.Details)
	}
}

func TestStatusFallbackCodeWhenBodyIsNotAnEnvelope(t *testing.T) {
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := gw.GetCurrentPlan(context.Background(), "cust-001")
	if domain.ErrorCode(err) != "HTTP_500" {
		t.Fatalf("want HTTP_500, got %v", err)
	}
}

func TestTransportFailureMapsToNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	gw := New(Config{BaseURL: srv.URL})

	_, err := gw.GetNotifications(context.Background(), "cust-001")
	ae, ok := domain.AsAPIError(err)
	if !ok || ae.Code != domain.CodeNetworkError {
		t.Fatalf("want NETWORK_ERROR, got %v", err)
	}
	if ae.Message == "" {
		t.Fatal("network error without a user-facing message")
	}
}

func TestRefreshSessionNotImplemented(t *testing.T) {
	gw := New(Config{BaseURL: "http://unused"})

	_, err := gw.RefreshSession(context.Background(), "ref-1")
	if domain.ErrorCode(err) != domain.CodeNotImplemented {
		t.Fatalf("want NOT_IMPLEMENTED, got %v", err)
	}
}
