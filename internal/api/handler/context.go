package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxCustomerID extracts the customer id injected by the Auth middleware and
// fast-fails before any service call. A token without a customer identity is
// structurally valid but operationally unusable, so it is rejected with 401.
func ctxCustomerID(c echo.Context) (string, error) {
	id, _ := c.Get("customer_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
