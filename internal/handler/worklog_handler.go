package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"worklog/internal/auth"
	"worklog/internal/errors"
	"worklog/internal/export"
	"worklog/internal/model"
	"worklog/internal/service"
)

const dateLayout = "2006-01-02"

// WorklogHandler handles worklog endpoints.
type WorklogHandler struct {
	worklogService service.WorklogService
}

// NewWorklogHandler creates a new worklog handler.
func NewWorklogHandler(worklogService service.WorklogService) *WorklogHandler {
	return &WorklogHandler{worklogService: worklogService}
}

// WorklogRequest represents a worklog create/update request.
type WorklogRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	OwnerID uint   `json:"ownerId"`
	Hours   string `json:"hours" validate:"required"`
	Meals   int    `json:"meals" validate:"min=0"`
	Nights  int    `json:"nights" validate:"min=0"`
}

// WorklogResponse represents a worklog in API responses.
type WorklogResponse struct {
	ID           uint   `json:"id"`
	Date         string `json:"date"`
	OwnerID      uint   `json:"ownerId"`
	OwnerName    string `json:"ownerName,omitempty"`
	OwnerSurname string `json:"ownerSurname,omitempty"`
	Hours        string `json:"hours"`
	Meals        int    `json:"meals"`
	Nights       int    `json:"nights"`
	CreatedBy    string `json:"createdBy,omitempty"`
}

func toWorklogResponse(wl *model.Worklog) WorklogResponse {
	return WorklogResponse{
		ID:           wl.ID,
		Date:         wl.WorkDate.Format(dateLayout),
		OwnerID:      wl.EmployeeID,
		OwnerName:    wl.Employee.Name,
		OwnerSurname: wl.Employee.Surname,
		Hours:        wl.Hours.StringFixed(2),
		Meals:        wl.Meals,
		Nights:       wl.Nights,
		CreatedBy:    wl.CreatedBy,
	}
}

func (h *WorklogHandler) bindInput(c echo.Context) (service.WorklogInput, error) {
	var req WorklogRequest
	if err := c.Bind(&req); err != nil {
		return service.WorklogInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return service.WorklogInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	workDate, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return service.WorklogInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}
	hours, err := decimal.NewFromString(req.Hours)
	if err != nil || hours.IsNegative() {
		return service.WorklogInput{}, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid hours",
			Code:  "INVALID_HOURS",
		})
	}

	return service.WorklogInput{
		WorkDate: workDate,
		OwnerID:  req.OwnerID,
		Hours:    hours,
		Meals:    req.Meals,
		Nights:   req.Nights,
	}, nil
}

// listFilter parses the optional ownerId/from/to query parameters.
func listFilter(c echo.Context) (service.ListFilter, error) {
	var filter service.ListFilter
	if raw := c.QueryParam("ownerId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid ownerId")
		}
		ownerID := uint(id)
		filter.OwnerID = &ownerID
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		filter.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		filter.To = &to
	}
	return filter, nil
}

// List godoc
// @Summary List worklogs visible to the caller
// @Tags worklogs
// @Produce json
// @Security BearerAuth
// @Param ownerId query int false "Filter by owner (admins only)"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} WorklogResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /worklogs [get]
func (h *WorklogHandler) List(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	filter, err := listFilter(c)
	if err != nil {
		return err
	}

	worklogs, err := h.worklogService.List(c.Request().Context(), principal, filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]WorklogResponse, 0, len(worklogs))
	for i := range worklogs {
		resp = append(resp, toWorklogResponse(&worklogs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a single worklog
// @Tags worklogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Worklog ID"
// @Success 200 {object} WorklogResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /worklogs/{id} [get]
func (h *WorklogHandler) Get(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	worklog, err := h.worklogService.Get(c.Request().Context(), principal, uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toWorklogResponse(worklog))
}

// Create godoc
// @Summary Create a worklog
// @Tags worklogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WorklogRequest true "Worklog data"
// @Success 201 {object} WorklogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /worklogs [post]
func (h *WorklogHandler) Create(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	worklog, err := h.worklogService.Create(c.Request().Context(), principal, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, toWorklogResponse(worklog))
}

// Update godoc
// @Summary Update a worklog
// @Tags worklogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Worklog ID"
// @Param request body WorklogRequest true "Worklog data"
// @Success 200 {object} WorklogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /worklogs/{id} [put]
func (h *WorklogHandler) Update(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	worklog, err := h.worklogService.Update(c.Request().Context(), principal, uint(id), input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toWorklogResponse(worklog))
}

// Delete godoc
// @Summary Delete a worklog
// @Tags worklogs
// @Security BearerAuth
// @Param id path int true "Worklog ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /worklogs/{id} [delete]
func (h *WorklogHandler) Delete(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.worklogService.Delete(c.Request().Context(), principal, uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// Export godoc
// @Summary Export visible worklogs as CSV
// @Tags worklogs
// @Produce text/csv
// @Security BearerAuth
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} errors.ErrorResponse
// @Router /worklogs/export [get]
func (h *WorklogHandler) Export(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	filter, err := listFilter(c)
	if err != nil {
		return err
	}

	// Same scoping as List: admins export everything, users only
	// their own records, unlinked users an empty file.
	worklogs, err := h.worklogService.List(c.Request().Context(), principal, filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="worklogs.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteWorklogsCSV(c.Response(), worklogs)
}
