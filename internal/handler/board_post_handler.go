package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boardapi/internal/service"
)

// BoardPostHandler handles board post endpoints.
type BoardPostHandler struct {
	postService service.BoardPostService
}

// NewBoardPostHandler creates a new board post handler.
func NewBoardPostHandler(postService service.BoardPostService) *BoardPostHandler {
	return &BoardPostHandler{postService: postService}
}

// BoardPostRequest is the body for creating or updating a post.
type BoardPostRequest struct {
	Name    string `json:"name" validate:"max=255"`
	Message string `json:"message"`
}

// Create godoc
// @Summary Create a board post
// @Tags board-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BoardPostRequest true "Post"
// @Success 201 {object} BoardPostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /board-posts [post]
func (h *BoardPostHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	var req BoardPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), caller, req.Name, req.Message)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, toBoardPostResponse(post))
}

// List godoc
// @Summary List board posts, newest first
// @Tags board-posts
// @Produce json
// @Success 200 {array} BoardPostResponse
// @Router /board-posts [get]
func (h *BoardPostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toBoardPostResponses(posts))
}

// Get godoc
// @Summary Get a board post
// @Tags board-posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} BoardPostResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /board-posts/{id} [get]
func (h *BoardPostHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toBoardPostResponse(post))
}

// ListMine godoc
// @Summary List the caller's board posts
// @Tags board-posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BoardPostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /board-posts/mine [get]
func (h *BoardPostHandler) ListMine(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	posts, err := h.postService.ListMine(c.Request().Context(), caller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toBoardPostResponses(posts))
}

// Update godoc
// @Summary Update one of the caller's board posts
// @Tags board-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body BoardPostRequest true "Post"
// @Success 200 {object} BoardPostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /board-posts/{id} [put]
func (h *BoardPostHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	var req BoardPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Update(c.Request().Context(), caller, id, req.Name, req.Message)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toBoardPostResponse(post))
}

// Delete godoc
// @Summary Delete one of the caller's board posts
// @Tags board-posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /board-posts/{id} [delete]
func (h *BoardPostHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	if err := h.postService.Delete(c.Request().Context(), caller, id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}
