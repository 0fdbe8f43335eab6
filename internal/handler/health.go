package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness and database reachability.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := "ok"
		dbStatus := "ok"
		ctx := c.Request().Context()
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				status, dbStatus = "degraded", "unreachable"
			}
		} else {
			status, dbStatus = "degraded", "not configured"
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status": status,
			"db":     dbStatus,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
