package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skymovel/app-core/internal/api/metrics"
	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/service"
)

// SessionHandler exposes the authentication lifecycle: login, logout, session
// restore and the persisted one-time flags.
type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type loginRequest struct {
	CPF      string `json:"cpf" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	DeviceID string `json:"deviceId"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

type sessionResponse struct {
	Session   domain.Session `json:"session"`
	Biometric string         `json:"biometricPreference,omitempty"`
}

// Login authenticates the customer against the carrier boundary.
//
// @Summary      Login with CPF and password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  domain.APIError
// @Failure      401   {object}  domain.APIError
// @Router       /v1/auth/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, token, err := h.sessions.Login(c.Request().Context(), req.CPF, req.Password, req.DeviceID)
	if err != nil {
		result := "error"
		if domain.ErrorCode(err) == domain.CodeAuthInvalid {
			result = "invalid_credentials"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, Session: sess})
}

// Logout clears the session. The remote invalidation is best-effort; local
// state is always cleared.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      204  "session cleared"
// @Router       /v1/auth/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns the in-memory session mirror and the stored biometric answer.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	pref, err := h.sessions.BiometricPreference(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Session:   h.sessions.Session(),
		Biometric: pref,
	})
}

// Restore rebuilds the session mirror from persisted storage, the splash
// screen check that decides between the login and home routes.
//
// @Summary      Restore persisted session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/restore [post]
func (h *SessionHandler) Restore(c echo.Context) error {
	if _, err := h.sessions.RestoreSession(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: h.sessions.Session()})
}

// MarkOnboardingSeen flips the one-way onboarding flag.
//
// @Summary      Mark onboarding as seen
// @Tags         session
// @Success      204  "flag persisted"
// @Router       /v1/session/onboarding-seen [post]
func (h *SessionHandler) MarkOnboardingSeen(c echo.Context) error {
	if err := h.sessions.SetOnboardingSeen(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type biometricRequest struct {
	Enabled bool `json:"enabled"`
}

// SetBiometrics records the answer to the post-login biometrics prompt.
//
// @Summary      Store biometric preference
// @Tags         session
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  biometricRequest  true  "Prompt answer"
// @Success      204   "preference persisted"
// @Router       /v1/session/biometrics [put]
func (h *SessionHandler) SetBiometrics(c echo.Context) error {
	var req biometricRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.sessions.SetBiometricPreference(c.Request().Context(), req.Enabled); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
