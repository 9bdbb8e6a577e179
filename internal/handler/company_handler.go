package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/service"
)

// CompanyHandler handles company administration endpoints.
type CompanyHandler struct {
	companyService service.CompanyService
	debug          bool
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(companyService service.CompanyService, debug bool) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, debug: debug}
}

// CompanyRequest represents a company create or update request.
type CompanyRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create godoc
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompanyRequest true "Company data"
// @Success 201 {object} model.Company
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: err.Error()})
	}

	company, err := h.companyService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusCreated, company)
}

// List godoc
// @Summary List companies with ownership counts
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.CompanyWithCounts
// @Failure 403 {object} errors.ErrorResponse
// @Router /companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.companyService.List(c.Request().Context())
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, companies)
}

// Get godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} model.Company
// @Failure 404 {object} errors.ErrorResponse
// @Router /companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	company, err := h.companyService.Get(c.Request().Context(), id)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, company)
}

// Update godoc
// @Summary Rename a company
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param request body CompanyRequest true "Company data"
// @Success 200 {object} model.Company
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: err.Error()})
	}

	company, err := h.companyService.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, company)
}

// Delete godoc
// @Summary Delete an empty company
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.companyService.Delete(c.Request().Context(), id); err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "company deleted successfully"})
}
