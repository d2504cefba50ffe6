package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"worklog/internal/auth"
	"worklog/internal/errors"
	"worklog/internal/service"
)

// TeamHandler handles team endpoints.
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// TeamRequest represents a team create/update request.
type TeamRequest struct {
	Name string `json:"name" validate:"required"`
}

// List godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Team
// @Router /teams [get]
func (h *TeamHandler) List(c echo.Context) error {
	teams, err := h.teamService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, teams)
}

// Get godoc
// @Summary Get a team by id
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} model.Team
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id} [get]
func (h *TeamHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	team, err := h.teamService.Get(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, team)
}

// Create godoc
// @Summary Create a team (admin only)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TeamRequest true "Team data"
// @Success 201 {object} model.Team
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams [post]
func (h *TeamHandler) Create(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req TeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.teamService.Create(c.Request().Context(), principal, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, team)
}

// Update godoc
// @Summary Rename a team (admin only)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body TeamRequest true "Team data"
// @Success 200 {object} model.Team
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id} [put]
func (h *TeamHandler) Update(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req TeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.teamService.Update(c.Request().Context(), principal, uint(id), req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, team)
}

// Delete godoc
// @Summary Delete a team (admin only)
// @Tags teams
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id} [delete]
func (h *TeamHandler) Delete(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.teamService.Delete(c.Request().Context(), principal, uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
