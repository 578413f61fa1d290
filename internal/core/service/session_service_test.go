package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

func demoLoginGateway() *stubGateway {
	return &stubGateway{
		loginFn: func(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
			if in.CPF != "12345678900" {
				return nil, domain.NewAPIError(domain.CodeAuthInvalid, "CPF ou senha inválidos.")
			}
			return &ports.LoginResult{
				AccessToken:  "tok-abc",
				RefreshToken: "ref-abc",
				Customer: ports.LoginCustomer{
					ID:          "cust-001",
					Name:        "Carlos Eduardo Silva",
					ProfileType: domain.ProfileSolo,
				},
			}, nil
		},
	}
}

func newTestSessions(gw ports.SkyGateway, kv ports.KeyValue) *SessionService {
	return NewSessionService(gw, kv, "test-secret", time.Hour, zerolog.Nop())
}

func TestLoginPersistsSessionKeys(t *testing.T) {
	kv := newMemKV()
	svc := newTestSessions(demoLoginGateway(), kv)

	sess, token, err := svc.Login(context.Background(), "12345678900", "1234", "dev-1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.IsAuthenticated {
		t.Fatal("session not authenticated after login")
	}
	if sess.CustomerName != "Carlos Eduardo Silva" {
		t.Fatalf("customer name = %q", sess.CustomerName)
	}

	for key, want := range map[string]string{
		domain.KeyAccessToken:  "tok-abc",
		domain.KeyRefreshToken: "ref-abc",
		domain.KeyCustomerID:   "cust-001",
	} {
		if got := kv.m[key]; got != want {
			t.Errorf("kv[%s] = %q, want %q", key, got, want)
		}
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("facade token invalid: %v", err)
	}
	if claims["customer_id"] != "cust-001" {
		t.Errorf("customer_id claim = %v", claims["customer_id"])
	}
	if claims["profile_type"] != "SKY_MOVEL_SOLO" {
		t.Errorf("profile_type claim = %v", claims["profile_type"])
	}
}

func TestLoginFailurePropagatesAndWritesNothing(t *testing.T) {
	kv := newMemKV()
	svc := newTestSessions(demoLoginGateway(), kv)

	_, _, err := svc.Login(context.Background(), "00000000000", "1234", "")
	if domain.ErrorCode(err) != domain.CodeAuthInvalid {
		t.Fatalf("want AUTH_INVALID, got %v", err)
	}
	if len(kv.m) != 0 {
		t.Fatalf("failed login wrote keys: %v", kv.m)
	}
	if svc.Session().IsAuthenticated {
		t.Fatal("session marked authenticated after failed login")
	}
}

func TestLogoutClearsSessionKeepsOnboarding(t *testing.T) {
	kv := newMemKV()
	svc := newTestSessions(demoLoginGateway(), kv)

	ctx := context.Background()
	if err := svc.SetOnboardingSeen(ctx); err != nil {
		t.Fatalf("set onboarding: %v", err)
	}
	if _, _, err := svc.Login(ctx, "12345678900", "1234", ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.SetBiometricPreference(ctx, true); err != nil {
		t.Fatalf("set biometric: %v", err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	for _, key := range []string{
		domain.KeyAccessToken,
		domain.KeyRefreshToken,
		domain.KeyCustomerID,
		domain.KeyBiometricEnabled,
	} {
		if v := kv.m[key]; v != "" {
			t.Errorf("kv[%s] = %q after logout, want cleared", key, v)
		}
	}
	if kv.m[domain.KeyHasSeenOnboarding] != "true" {
		t.Error("onboarding flag lost on logout")
	}

	sess := svc.Session()
	if sess.IsAuthenticated || sess.CustomerID != "" {
		t.Fatalf("session mirror not reset: %+v", sess)
	}
	if !sess.HasSeenOnboarding {
		t.Fatal("onboarding flag dropped from the mirror")
	}
}

func TestLogoutClearsLocalStateDespiteRemoteFailure(t *testing.T) {
	kv := newMemKV()
	gw := demoLoginGateway()
	gw.logoutFn = func(context.Context, string) error {
		return domain.NewAPIError(domain.CodeNetworkError, "Sem conexão com a internet.")
	}
	svc := newTestSessions(gw, kv)

	ctx := context.Background()
	if _, _, err := svc.Login(ctx, "12345678900", "1234", ""); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout should swallow the remote failure, got %v", err)
	}
	if kv.m[domain.KeyAccessToken] != "" {
		t.Fatal("access token survived logout with failing remote")
	}
}

func TestCheckAuthRestoresPersistedSession(t *testing.T) {
	kv := newMemKV()
	kv.m[domain.KeyAccessToken] = "tok-persisted"
	kv.m[domain.KeyRefreshToken] = "ref-persisted"
	kv.m[domain.KeyCustomerID] = "cust-001"
	kv.m[domain.KeyHasSeenOnboarding] = "true"

	svc := newTestSessions(demoLoginGateway(), kv)
	ok, err := svc.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("check auth: %v", err)
	}
	if !ok {
		t.Fatal("persisted session not restored")
	}

	sess := svc.Session()
	if sess.CustomerID != "cust-001" || !sess.HasSeenOnboarding {
		t.Fatalf("restored session = %+v", sess)
	}
	if svc.AccessToken() != "tok-persisted" {
		t.Fatalf("access token = %q", svc.AccessToken())
	}
}

func TestCheckAuthRequiresBothTokenAndCustomerID(t *testing.T) {
	kv := newMemKV()
	kv.m[domain.KeyAccessToken] = "tok-only"

	svc := newTestSessions(demoLoginGateway(), kv)
	ok, err := svc.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("check auth: %v", err)
	}
	if ok {
		t.Fatal("token without customer id must not authenticate")
	}
}

func TestBiometricPreferenceValues(t *testing.T) {
	kv := newMemKV()
	svc := newTestSessions(demoLoginGateway(), kv)
	ctx := context.Background()

	pref, err := svc.BiometricPreference(ctx)
	if err != nil || pref != "" {
		t.Fatalf("unprompted preference = %q, %v", pref, err)
	}

	if err := svc.SetBiometricPreference(ctx, false); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if pref, _ = svc.BiometricPreference(ctx); pref != "declined" {
		t.Fatalf("declined preference = %q", pref)
	}

	if err := svc.SetBiometricPreference(ctx, true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if pref, _ = svc.BiometricPreference(ctx); pref != "true" {
		t.Fatalf("enabled preference = %q", pref)
	}
}

func TestLoginSurfacesStorageFailure(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("disk full")
	svc := newTestSessions(demoLoginGateway(), kv)

	if _, _, err := svc.Login(context.Background(), "12345678900", "1234", ""); err == nil {
		t.Fatal("expected storage failure to propagate")
	}
}
