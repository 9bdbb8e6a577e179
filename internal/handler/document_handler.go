package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/middleware"
	"github.com/HUPCF/Due-Diligence-Backend/internal/service"
)

// DocumentHandler handles standalone document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	debug           bool
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentService service.DocumentService, debug bool) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, debug: debug}
}

// Upload godoc
// @Summary Upload a document for a user
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Target user ID"
// @Param file formData file true "Document"
// @Success 201 {object} model.Document
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /documents/{userId} [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
	}

	targetUserID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "no file uploaded"})
	}
	src, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "unreadable file " + header.Filename})
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "unreadable file " + header.Filename})
	}

	var companyID uint
	if actor.CompanyID != nil {
		companyID = *actor.CompanyID
	}

	document, err := h.documentService.Upload(c.Request().Context(), companyID, targetUserID,
		service.FileUpload{Name: header.Filename, Data: data})
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusCreated, document)
}

// ListForUser godoc
// @Summary List all documents in a user's company
// @Description File paths are short-lived signed URLs. Non-admins always see
// @Description their own company regardless of the path parameter.
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} service.DocumentView
// @Failure 404 {object} errors.ErrorResponse
// @Router /documents/user/{userId} [get]
func (h *DocumentHandler) ListForUser(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
	}

	viewedUserID := actor.ID
	if actor.IsAdmin() {
		id, err := parseIDParam(c, "userId")
		if err != nil {
			return err
		}
		viewedUserID = id
	}

	views, err := h.documentService.ListForUser(c.Request().Context(), viewedUserID)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, views)
}

// Delete godoc
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var companyID uint
	if actor.CompanyID != nil {
		companyID = *actor.CompanyID
	}

	if err := h.documentService.Delete(c.Request().Context(), id, companyID); err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "document deleted successfully"})
}
