// Package handler contains the HTTP endpoints of the service. Each
// handler struct bundles the repositories it needs; request DTOs are
// bound from JSON and checked with the validator before any database
// work happens.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/service"
)

// validate is shared by all handlers; validator.Validate is safe for
// concurrent use.
var validate = validator.New()

const dbTimeout = 5 * time.Second

// reqCtx bounds the duration of database calls made by a handler.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// actor returns the authenticated caller stored by the JWT middleware.
func actor(c echo.Context) service.Actor {
	var a service.Actor
	if id, ok := c.Get("user_id").(uint64); ok {
		a.ID = id
	}
	if r, ok := c.Get("role").(string); ok {
		a.Role = r
	}
	return a
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pagination reads page/page_size query parameters with sane bounds.
func pagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		pageSize = v
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// pagedResp is the envelope for paginated list responses.
type pagedResp struct {
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    interface{} `json:"items"`
}

// invalidFields writes a 400 response listing the failing fields of a
// DTO validation error.
func invalidFields(c echo.Context, err error) error {
	fields := echo.Map{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on " + fe.Tag()
		}
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
}
