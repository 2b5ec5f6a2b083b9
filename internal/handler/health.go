package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It reports
// whether the user store collaborator was reachable at startup; the service
// stays up either way because the fallback administrator needs no store.
func NewHealth(storeUp func() bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":     "ok",
			"user_store": storeUp(),
		})
	}
}
