package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/roster-viewer-go/internal/handler/http/response"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/validator"
)

type RosterHandler interface {
	GetGrid(w http.ResponseWriter, r *http.Request)
	GetCell(w http.ResponseWriter, r *http.Request)
	GetWindow(w http.ResponseWriter, r *http.Request)
	GetContrast(w http.ResponseWriter, r *http.Request)
}

type RosterHandlerImpl struct {
	rosterService roster.RosterService
}

func NewRosterHandler(rosterService roster.RosterService) RosterHandler {
	return &RosterHandlerImpl{rosterService: rosterService}
}

// GetGrid implements RosterHandler.
func (h *RosterHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := roster.GridRequest{
		Date:  query.Get("date"),
		View:  query.Get("view"),
		Theme: middleware.ThemeFromContext(r.Context()),
	}
	if team := query.Get("team"); team != "" {
		req.Team = &team
	}

	var errs validator.ValidationErrors
	req.IncludeHidden, errs = parseFlag(query.Get("include_hidden"), "include_hidden", errs)
	req.IncludeInactive, errs = parseFlag(query.Get("include_inactive"), "include_inactive", errs)
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	grid, err := h.rosterService.GetGrid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if len(grid.Skipped) > 0 {
		response.SuccessWithMessage(w, fmt.Sprintf("%d employee(s) skipped", len(grid.Skipped)), grid)
		return
	}
	response.Success(w, grid)
}

// GetCell implements RosterHandler.
func (h *RosterHandlerImpl) GetCell(w http.ResponseWriter, r *http.Request) {
	req := roster.CellRequest{
		Employee: r.URL.Query().Get("employee"),
		Date:     r.URL.Query().Get("date"),
		Theme:    middleware.ThemeFromContext(r.Context()),
	}

	cell, err := h.rosterService.GetCell(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cell)
}

// GetWindow implements RosterHandler.
func (h *RosterHandlerImpl) GetWindow(w http.ResponseWriter, r *http.Request) {
	req := roster.WindowRequest{
		Date: r.URL.Query().Get("date"),
		View: r.URL.Query().Get("view"),
	}

	window, err := h.rosterService.GetWindow(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, window)
}

// GetContrast implements RosterHandler.
func (h *RosterHandlerImpl) GetContrast(w http.ResponseWriter, r *http.Request) {
	req := roster.ContrastRequest{
		Hex:   r.URL.Query().Get("hex"),
		Theme: middleware.ThemeFromContext(r.Context()).Name(),
	}
	if req.Hex == "" {
		response.BadRequest(w, "hex is required", nil)
		return
	}

	contrast, err := h.rosterService.GetContrast(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, contrast)
}

func parseFlag(value, field string, errs validator.ValidationErrors) (bool, validator.ValidationErrors) {
	if value == "" {
		return false, errs
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be true or false",
		})
	}
	return b, errs
}
