package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

// sessionKeys are the entries cleared on logout. hasSeenOnboarding is a
// one-way flag and survives; biometricEnabled is re-prompted after the next
// login.
var sessionKeys = []string{
	domain.KeyAccessToken,
	domain.KeyRefreshToken,
	domain.KeyCustomerID,
	domain.KeyBiometricEnabled,
}

// SessionService owns the token lifecycle: it authenticates against the SKY
// boundary, persists the session keys, keeps an in-memory mirror, and mints
// the facade JWT consumed by the API middleware.
type SessionService struct {
	gw        ports.SkyGateway
	kv        ports.KeyValue
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	mu      sync.Mutex
	session domain.Session
}

func NewSessionService(gw ports.SkyGateway, kv ports.KeyValue, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{gw: gw, kv: kv, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login authenticates the customer and persists the session keys. Unlike the
// other store actions it propagates the boundary error so the login screen
// can render a field-level message instead of a global one.
func (s *SessionService) Login(ctx context.Context, cpf, password, deviceID string) (domain.Session, string, error) {
	res, err := s.gw.Login(ctx, ports.LoginInput{CPF: cpf, Password: password, DeviceID: deviceID})
	if err != nil {
		return domain.Session{}, "", err
	}

	if err := s.kv.Set(ctx, domain.KeyAccessToken, res.AccessToken); err != nil {
		return domain.Session{}, "", err
	}
	if err := s.kv.Set(ctx, domain.KeyRefreshToken, res.RefreshToken); err != nil {
		return domain.Session{}, "", err
	}
	if err := s.kv.Set(ctx, domain.KeyCustomerID, res.Customer.ID); err != nil {
		return domain.Session{}, "", err
	}

	s.mu.Lock()
	s.session = domain.Session{
		IsAuthenticated:   true,
		AccessToken:       res.AccessToken,
		RefreshToken:      res.RefreshToken,
		CustomerID:        res.Customer.ID,
		CustomerName:      res.Customer.Name,
		ProfileType:       res.Customer.ProfileType,
		HasSeenOnboarding: s.session.HasSeenOnboarding,
	}
	sess := s.session
	s.mu.Unlock()

	token, err := s.issueToken(res.Customer)
	if err != nil {
		return domain.Session{}, "", err
	}

	s.log.Info().Str("customer_id", res.Customer.ID).Msg("customer logged in")
	return sess, token, nil
}

// Logout invalidates the session remotely on a best-effort basis, then
// unconditionally clears the persisted session keys and resets the mirror.
// A failing remote call never blocks the local clearing.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	token := s.session.AccessToken
	s.mu.Unlock()

	if err := s.gw.Logout(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}

	err := s.kv.Delete(ctx, sessionKeys...)

	s.mu.Lock()
	onboarding := s.session.HasSeenOnboarding
	s.session = domain.Session{HasSeenOnboarding: onboarding}
	s.mu.Unlock()

	return err
}

// CheckAuth rebuilds the in-memory mirror from persisted storage and reports
// whether a session exists. Called once at process start.
func (s *SessionService) CheckAuth(ctx context.Context) (bool, error) {
	token, err := s.kv.Get(ctx, domain.KeyAccessToken)
	if err != nil {
		return false, err
	}
	customerID, err := s.kv.Get(ctx, domain.KeyCustomerID)
	if err != nil {
		return false, err
	}
	refresh, err := s.kv.Get(ctx, domain.KeyRefreshToken)
	if err != nil {
		return false, err
	}
	onboarding, err := s.kv.Get(ctx, domain.KeyHasSeenOnboarding)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.HasSeenOnboarding = onboarding == "true"
	if token != "" && customerID != "" {
		s.session.IsAuthenticated = true
		s.session.AccessToken = token
		s.session.RefreshToken = refresh
		s.session.CustomerID = customerID
		return true, nil
	}
	return false, nil
}

// RestoreSession is the splash-screen alias for CheckAuth.
func (s *SessionService) RestoreSession(ctx context.Context) (bool, error) {
	return s.CheckAuth(ctx)
}

// SetOnboardingSeen marks the onboarding as seen. One-way, never reset.
func (s *SessionService) SetOnboardingSeen(ctx context.Context) error {
	if err := s.kv.Set(ctx, domain.KeyHasSeenOnboarding, "true"); err != nil {
		return err
	}
	s.mu.Lock()
	s.session.HasSeenOnboarding = true
	s.mu.Unlock()
	return nil
}

// SetBiometricPreference records the answer to the first post-login
// biometrics prompt: "true" when enabled, "declined" otherwise.
func (s *SessionService) SetBiometricPreference(ctx context.Context, enabled bool) error {
	value := "declined"
	if enabled {
		value = "true"
	}
	return s.kv.Set(ctx, domain.KeyBiometricEnabled, value)
}

// BiometricPreference returns the stored prompt answer, or "" when the
// customer has not been prompted yet.
func (s *SessionService) BiometricPreference(ctx context.Context) (string, error) {
	return s.kv.Get(ctx, domain.KeyBiometricEnabled)
}

// Session returns a copy of the in-memory session mirror.
func (s *SessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// AccessToken returns the boundary token for outgoing calls, or "" when
// anonymous. Satisfies the real gateway's token source.
func (s *SessionService) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.AccessToken
}

// CustomerID returns the authenticated customer id, or "" when anonymous.
func (s *SessionService) CustomerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.CustomerID
}

func (s *SessionService) issueToken(customer ports.LoginCustomer) (string, error) {
	claims := jwt.MapClaims{
		"customer_id":  customer.ID,
		"name":         customer.Name,
		"profile_type": string(customer.ProfileType),
		"exp":          time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
