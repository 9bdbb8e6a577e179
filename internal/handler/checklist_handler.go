package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HUPCF/Due-Diligence-Backend/internal/service"
)

// ChecklistHandler serves the read-only checklist reference data.
type ChecklistHandler struct {
	checklistService service.ChecklistService
	debug            bool
}

// NewChecklistHandler creates a new checklist handler.
func NewChecklistHandler(checklistService service.ChecklistService, debug bool) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService, debug: debug}
}

// Categories godoc
// @Summary List checklist categories
// @Tags checklist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ChecklistCategory
// @Failure 401 {object} errors.ErrorResponse
// @Router /checklist/categories [get]
func (h *ChecklistHandler) Categories(c echo.Context) error {
	categories, err := h.checklistService.Categories(c.Request().Context())
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, categories)
}

// ItemsByCategory godoc
// @Summary List checklist items in a category
// @Tags checklist
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {array} model.ChecklistItem
// @Failure 400 {object} errors.ErrorResponse
// @Router /checklist/categories/{id}/items [get]
func (h *ChecklistHandler) ItemsByCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.checklistService.ItemsByCategory(c.Request().Context(), id)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, items)
}

// Item godoc
// @Summary Get a single checklist item
// @Tags checklist
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} model.ChecklistItem
// @Failure 404 {object} errors.ErrorResponse
// @Router /checklist/items/{id} [get]
func (h *ChecklistHandler) Item(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.checklistService.ItemByID(c.Request().Context(), id)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, item)
}

// Items godoc
// @Summary List all checklist items with category names
// @Tags checklist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ChecklistItemView
// @Failure 401 {object} errors.ErrorResponse
// @Router /checklist/items [get]
func (h *ChecklistHandler) Items(c echo.Context) error {
	items, err := h.checklistService.Items(c.Request().Context())
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, items)
}
