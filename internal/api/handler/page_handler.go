package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/api/middleware"
)

// pageResponse describes a page shell. The front end renders it; the server
// only decides whether the caller may see it.
type pageResponse struct {
	Page string       `json:"page"`
	Path string       `json:"path"`
	User *sessionUser `json:"user,omitempty"`
}

// PageHandler serves the guarded page shells.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Page returns a handler answering with the named page descriptor.
func (h *PageHandler) Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := pageResponse{Page: name, Path: c.Request().URL.Path}
		if s := middleware.SessionFrom(c); s != nil {
			resp.User = &sessionUser{ID: s.UserID, Role: string(s.Role)}
		}
		return c.JSON(http.StatusOK, resp)
	}
}
