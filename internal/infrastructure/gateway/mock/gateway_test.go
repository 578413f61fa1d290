package mock

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// all tests run with a zero base delay so no simulated latency applies

func TestLoginCredentialMatrix(t *testing.T) {
	gw := New(0)
	ctx := context.Background()

	cases := []struct {
		name     string
		cpf      string
		password string
		wantOK   bool
	}{
		{"valid digits", "12345678900", "1234", true},
		{"valid masked cpf", "123.456.789-00", "senha123", true},
		{"wrong cpf", "98765432100", "1234", false},
		{"short password", "12345678900", "123", false},
		{"empty credentials", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := gw.Login(ctx, ports.LoginInput{CPF: tc.cpf, Password: tc.password})
			if tc.wantOK {
				if err != nil {
					t.Fatalf("login: %v", err)
				}
				if res.Customer.ID != "cust-001" {
					t.Fatalf("customer = %+v", res.Customer)
				}
				if res.AccessToken == "" || res.RefreshToken == "" {
					t.Fatal("tokens missing")
				}
				return
			}
			if domain.ErrorCode(err) != domain.CodeAuthInvalid {
				t.Fatalf("want AUTH_INVALID, got %v", err)
			}
		})
	}
}

func TestRefreshSessionValidatesToken(t *testing.T) {
	gw := New(0)
	ctx := context.Background()

	login, err := gw.Login(ctx, ports.LoginInput{CPF: "12345678900", Password: "1234"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := gw.RefreshSession(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatal("empty access token")
	}

	if _, err := gw.RefreshSession(ctx, "stale-token"); domain.ErrorCode(err) != domain.CodeAuthExpired {
		t.Fatalf("want AUTH_EXPIRED, got %v", err)
	}
}

func TestValidateChipRule(t *testing.T) {
	gw := New(0)
	ctx := context.Background()

	cases := []struct {
		name  string
		iccid string
		valid bool
	}{
		{"valid", "89550534000000000001", true},
		{"wrong prefix", "12345678901234567890", false},
		{"too short", "8955053400000000001", false},
		{"too long", "895505340000000000012", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := gw.ValidateChip(ctx, tc.iccid)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if res.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v", res.Valid, tc.valid)
			}
			if !tc.valid && res.ErrorMessage == "" {
				t.Fatal("invalid result without message")
			}
			if tc.valid && res.ChipStatus != "NEW" {
				t.Fatalf("chip status = %q", res.ChipStatus)
			}
		})
	}
}

func TestCreateServiceRequestProtocolShape(t *testing.T) {
	gw := New(0)

	receipt, err := gw.CreateServiceRequest(context.Background(), domain.ServiceRequest{
		Type:       domain.RequestChipSwap,
		CustomerID: "cust-001",
		LineID:     "line-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(receipt.Protocol, "SKY") {
		t.Fatalf("protocol = %q", receipt.Protocol)
	}
	if receipt.Status != domain.RequestPending {
		t.Fatalf("status = %q", receipt.Status)
	}
	if !receipt.EstimatedCompletion.After(time.Now()) {
		t.Fatal("estimated completion not in the future")
	}
}

func TestFixtureReadsReturnCopies(t *testing.T) {
	gw := New(0)
	ctx := context.Background()

	plans, err := gw.GetAvailablePlans(ctx)
	if err != nil {
		t.Fatalf("plans: %v", err)
	}
	if len(plans) == 0 {
		t.Fatal("no plans")
	}
	plans[0].Name = "mutated"

	again, _ := gw.GetAvailablePlans(ctx)
	if again[0].Name == "mutated" {
		t.Fatal("fixture slice shared with callers")
	}

	profile, err := gw.GetCustomerProfile(ctx, "cust-001")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profile.MobileLines) == 0 {
		t.Fatal("no lines")
	}
	profile.MobileLines[0].Status = domain.LineCancelled

	fresh, _ := gw.GetCustomerProfile(ctx, "cust-001")
	if fresh.MobileLines[0].Status == domain.LineCancelled {
		t.Fatal("profile lines shared with callers")
	}
}

func TestDelayHonorsCancellation(t *testing.T) {
	gw := New(10 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := gw.GetConsumption(ctx, "cust-001")
	if err == nil {
		t.Fatal("expected context error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation took %v", elapsed)
	}
}

func TestUnreadFixtureNotifications(t *testing.T) {
	gw := New(0)
	notifs, err := gw.GetNotifications(context.Background(), "cust-001")
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}

	unread := 0
	for _, n := range notifs {
		if !n.Read {
			unread++
		}
	}
	if unread != 2 {
		t.Fatalf("unread fixtures = %d, want 2", unread)
	}
}
