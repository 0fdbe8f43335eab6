// Package handler contains the HTTP handlers.  All responses, success and
// failure alike, are JSON; failures share the {statusCode, message}
// envelope.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"hotelbooking/internal/model"
	"hotelbooking/internal/validate"
)

// fail writes the error envelope used by every endpoint.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"statusCode": status, "message": message})
}

// failValidation writes a 400 envelope carrying the per-field messages.
func failValidation(c echo.Context, verrs validate.ValidationErrors) error {
	return c.JSON(400, echo.Map{"statusCode": 400, "message": "validation failed", "errors": verrs})
}

// getUserID extracts the authenticated user id set by the JWT middleware.
// The claim is decoded from JSON so it may arrive as a float or a string.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

func isAdmin(c echo.Context) bool { return getRole(c) == model.RoleAdmin }

// parseID parses a numeric path parameter; zero is rejected.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseLimit reads ?limit= with a default and an upper bound.
func parseLimit(c echo.Context, def, max int) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// Page is the pagination envelope returned by the search endpoints.
type Page struct {
	TotalResults int `json:"totalResults"`
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
	TotalPages   int `json:"totalPages"`
	Items        any `json:"items"`
}

// NewPage assembles the envelope; TotalPages is ceil(total/pageSize).
func NewPage(total, page, pageSize int, items any) Page {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return Page{
		TotalResults: total,
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalPages:   pages,
		Items:        items,
	}
}

// parsePaging reads ?page= and ?pageSize= with defaults 1 and 10, capping
// pageSize at 100.
func parsePaging(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
