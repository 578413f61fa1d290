package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skymovel/app-core/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps boundary error codes and local validation failures to HTTP statuses.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the {code, message, details} envelope the mobile client expects.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, *domain.APIError) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, &domain.APIError{
			Code:    fmt.Sprintf("HTTP_%d", he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	// Boundary errors carry their own code; the status follows from it.
	if ae, ok := domain.AsAPIError(err); ok {
		return statusForCode(ae.Code), ae
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, &domain.APIError{
			Code:    "VALIDATION_ERROR",
			Message: ve.Reason,
			Details: map[string]string{"field": ve.Field},
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, domain.NewAPIError(domain.CodeAuthInvalid, "Não autenticado.")
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, domain.NewAPIError("NOT_FOUND", "Notificação não encontrada.")
	case errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound, domain.NewAPIError("NOT_FOUND", "Solicitação não encontrada.")
	case errors.Is(err, domain.ErrFlowFinished):
		return http.StatusConflict, domain.NewAPIError("FLOW_FINISHED", "Fluxo já encerrado.")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.NewAPIError("INTERNAL_ERROR", "Erro interno do servidor.")
}

func statusForCode(code string) int {
	switch code {
	case domain.CodeAuthInvalid, domain.CodeAuthExpired:
		return http.StatusUnauthorized
	case domain.CodeNotImplemented:
		return http.StatusNotImplemented
	case domain.CodeNetworkError:
		return http.StatusBadGateway
	}
	// HTTP_<status> is the real gateway's fallback for upstream responses
	// that carry no error envelope.
	if strings.HasPrefix(code, "HTTP_") {
		return http.StatusBadGateway
	}
	// Any other code is a business rejection from the carrier core
	// (CHIP_INVALID, PLAN_UNAVAILABLE, ...): the upstream answered, it
	// just said no.
	return http.StatusUnprocessableEntity
}
