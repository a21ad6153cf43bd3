package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness endpoint for load balancers and monitoring. It
// always answers a plain "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
