package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"boardapi/internal/service"
)

// SavedImageHandler handles saved image endpoints.
type SavedImageHandler struct {
	imageService service.SavedImageService
}

// NewSavedImageHandler creates a new saved image handler.
func NewSavedImageHandler(imageService service.SavedImageService) *SavedImageHandler {
	return &SavedImageHandler{imageService: imageService}
}

// SaveImageRequest is the body for bookmarking an image.
type SaveImageRequest struct {
	ImageURL     string `json:"imageUrl" validate:"required,max=768"`
	Title        string `json:"title" validate:"max=255"`
	Photographer string `json:"photographer" validate:"max=255"`
	SourceLink   string `json:"sourceLink" validate:"max=768"`
}

// Save godoc
// @Summary Save an image for the caller
// @Tags saved-images
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveImageRequest true "Image"
// @Success 201 {object} SavedImageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /saved-images/save [post]
func (h *SavedImageHandler) Save(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	var req SaveImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := h.imageService.Save(c.Request().Context(), caller, service.SaveImageInput{
		ImageURL:     req.ImageURL,
		Title:        req.Title,
		Photographer: req.Photographer,
		SourceLink:   req.SourceLink,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, toSavedImageResponse(image))
}

// ListMine godoc
// @Summary List the caller's saved images
// @Tags saved-images
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SavedImageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /saved-images/mine [get]
func (h *SavedImageHandler) ListMine(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	images, err := h.imageService.ListMine(c.Request().Context(), caller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toSavedImageResponses(images))
}

// Delete godoc
// @Summary Delete one of the caller's saved images
// @Tags saved-images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Saved image ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /saved-images/{id} [delete]
func (h *SavedImageHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	if err := h.imageService.Delete(c.Request().Context(), caller, id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Image deleted successfully"})
}

// CountSavers godoc
// @Summary Count accounts with at least one saved image
// @Tags saved-images
// @Produce json
// @Security BearerAuth
// @Success 200 {integer} int
// @Router /saved-images/users-with-images-count [get]
func (h *SavedImageHandler) CountSavers(c echo.Context) error {
	n, err := h.imageService.CountDistinctSavers(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, n)
}

// CountSaversForImage godoc
// @Summary Count accounts that saved a given image URL
// @Tags saved-images
// @Produce json
// @Param encodedUrl path string true "Percent-encoded image URL"
// @Success 200 {integer} int
// @Failure 400 {object} errors.ErrorResponse
// @Router /saved-images/image-user-count/{encodedUrl} [get]
func (h *SavedImageHandler) CountSaversForImage(c echo.Context) error {
	n, err := h.imageService.CountSaversForImage(c.Request().Context(), rawLastSegment(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, n)
}

// rawLastSegment returns the final path segment still percent-encoded. echo
// hands out decoded params when the request path has no encoded slash, so
// the service would otherwise decode some values twice.
func rawLastSegment(c echo.Context) string {
	escaped := c.Request().URL.EscapedPath()
	return escaped[strings.LastIndex(escaped, "/")+1:]
}
