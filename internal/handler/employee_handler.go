package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"worklog/internal/auth"
	"worklog/internal/errors"
	"worklog/internal/model"
	"worklog/internal/service"
)

// EmployeeHandler handles employee endpoints. All of them are
// admin-only, enforced by the employee service.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// EmployeeRequest represents an employee create/update request.
type EmployeeRequest struct {
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	TeamID  uint   `json:"teamId" validate:"required"`
}

// EmployeeResponse represents an employee in API responses.
type EmployeeResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	TeamID   uint   `json:"teamId"`
	TeamName string `json:"teamName,omitempty"`
}

func toEmployeeResponse(e *model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Surname:  e.Surname,
		TeamID:   e.TeamID,
		TeamName: e.Team.Name,
	}
}

func principalOr401(c echo.Context) (auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return principal, nil
}

// List godoc
// @Summary List employees (admin only)
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param teamId query int false "Filter by team"
// @Success 200 {array} EmployeeResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	principal, err := principalOr401(c)
	if err != nil {
		return err
	}

	var teamID *uint
	if raw := c.QueryParam("teamId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid teamId")
		}
		v := uint(id)
		teamID = &v
	}

	employees, err := h.employeeService.List(c.Request().Context(), principal, teamID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, toEmployeeResponse(&employees[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get an employee by id (admin only)
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} EmployeeResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	principal, err := principalOr401(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	employee, err := h.employeeService.Get(c.Request().Context(), principal, uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Create godoc
// @Summary Create an employee (admin only)
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EmployeeRequest true "Employee data"
// @Success 201 {object} EmployeeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	principal, err := principalOr401(c)
	if err != nil {
		return err
	}

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.employeeService.Create(c.Request().Context(), principal, service.EmployeeInput{
		Name:    req.Name,
		Surname: req.Surname,
		TeamID:  req.TeamID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// Update godoc
// @Summary Update an employee (admin only)
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param request body EmployeeRequest true "Employee data"
// @Success 200 {object} EmployeeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	principal, err := principalOr401(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.employeeService.Update(c.Request().Context(), principal, uint(id), service.EmployeeInput{
		Name:    req.Name,
		Surname: req.Surname,
		TeamID:  req.TeamID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Delete godoc
// @Summary Delete an employee (admin only)
// @Tags employees
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	principal, err := principalOr401(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.employeeService.Delete(c.Request().Context(), principal, uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
