package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/middleware"
	"github.com/HUPCF/Due-Diligence-Backend/internal/service"
)

const maxUploadFiles = 10

// ResponseHandler handles checklist response endpoints.
type ResponseHandler struct {
	responseService service.ResponseService
	debug           bool
}

// NewResponseHandler creates a new response handler.
func NewResponseHandler(responseService service.ResponseService, debug bool) *ResponseHandler {
	return &ResponseHandler{responseService: responseService, debug: debug}
}

// UpdateResponseRequest represents an answer text update.
type UpdateResponseRequest struct {
	Response string `json:"response" validate:"required"`
}

// DeleteFileRequest names the stored attachment to remove.
type DeleteFileRequest struct {
	StoredFileName string `json:"storedFileName" validate:"required"`
}

// Submit godoc
// @Summary Submit or update an answer to a checklist item
// @Description Multipart form with fields itemId, response, optional userId and
// @Description companyId (admin acting on behalf of a user), and up to 10 files.
// @Tags responses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param itemId formData int true "Checklist item ID"
// @Param response formData string true "Answer text"
// @Param files formData file false "Attachments"
// @Success 200 {object} model.Response
// @Success 201 {object} model.Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /responses [post]
func (h *ResponseHandler) Submit(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
	}

	itemID, _ := strconv.ParseUint(c.FormValue("itemId"), 10, 32)
	targetUserID, _ := strconv.ParseUint(c.FormValue("userId"), 10, 32)
	targetCompanyID, _ := strconv.ParseUint(c.FormValue("companyId"), 10, 32)
	target := service.ResolveSubmissionTarget(actor, uint(targetUserID), uint(targetCompanyID))

	files, err := h.readUploads(c)
	if err != nil {
		return err
	}

	result, err := h.responseService.Submit(c.Request().Context(), target, uint(itemID), c.FormValue("response"), files)
	if err != nil {
		return newHTTPError(err, h.debug)
	}

	status := http.StatusOK
	if result.Outcome == service.OutcomeCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, result.Response)
}

// readUploads collects the multipart attachments. A request without a
// multipart body is a plain text-only submission.
func (h *ResponseHandler) readUploads(c echo.Context) ([]service.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := form.File["files"]
	if len(headers) > maxUploadFiles {
		return nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "too many files, at most " + strconv.Itoa(maxUploadFiles) + " allowed",
		})
	}

	files := make([]service.FileUpload, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "unreadable file " + header.Filename})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "unreadable file " + header.Filename})
		}
		files = append(files, service.FileUpload{Name: header.Filename, Data: data})
	}
	return files, nil
}

// GetByItem godoc
// @Summary Get the company's answer to a checklist item
// @Description Returns null when nobody in the company answered the item yet.
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param itemId query int true "Checklist item ID"
// @Success 200 {object} service.ResponseView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /responses [get]
func (h *ResponseHandler) GetByItem(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
	}

	itemID, _ := strconv.ParseUint(c.QueryParam("itemId"), 10, 32)

	var companyID uint
	if actor.CompanyID != nil {
		companyID = *actor.CompanyID
	}

	view, err := h.responseService.GetByItem(c.Request().Context(), companyID, uint(itemID))
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, view)
}

// ListForUser godoc
// @Summary List all responses in a user's company
// @Description Attachments carry short-lived signed URLs. Non-admins always
// @Description see their own company regardless of the path parameter.
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} service.ResponseView
// @Failure 404 {object} errors.ErrorResponse
// @Router /responses/user/{userId} [get]
func (h *ResponseHandler) ListForUser(c echo.Context) error {
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

	views, err := h.responseService.ListForUser(c.Request().Context(), viewedUserID)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, views)
}

// Update godoc
// @Summary Replace the answer text of a response
// @Tags responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Response ID"
// @Param request body UpdateResponseRequest true "New answer text"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /responses/{id} [put]
func (h *ResponseHandler) Update(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateResponseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: err.Error()})
	}

	var companyID uint
	if actor.CompanyID != nil {
		companyID = *actor.CompanyID
	}

	if err := h.responseService.UpdateText(c.Request().Context(), id, companyID, req.Response); err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "response updated successfully"})
}

// DeleteFile godoc
// @Summary Remove one attachment from a response
// @Tags responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Response ID"
// @Param request body DeleteFileRequest true "Stored file name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /responses/{id}/file [delete]
func (h *ResponseHandler) DeleteFile(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "not authorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req DeleteFileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: err.Error()})
	}

	var companyID uint
	if actor.CompanyID != nil {
		companyID = *actor.CompanyID
	}

	if err := h.responseService.DeleteFile(c.Request().Context(), id, companyID, req.StoredFileName); err != nil {
		return newHTTPError(err, h.debug)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "file deleted successfully"})
}

// Download godoc
// @Summary Download an attachment through the server
// @Tags responses
// @Produce octet-stream
// @Security BearerAuth
// @Param fileName path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Router /responses/download/{fileName} [get]
func (h *ResponseHandler) Download(c echo.Context) error {
	fileName := c.Param("fileName")

	stream, contentType, downloadName, err := h.responseService.Download(c.Request().Context(), fileName)
	if err != nil {
		return newHTTPError(err, h.debug)
	}
	defer stream.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+downloadName+`"`)
	return c.Stream(http.StatusOK, contentType, stream)
}
