package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boardapi/internal/service"
)

// AccountHandler handles account endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// UpdateProfileRequest renames the caller. Password confirms the change.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// DeleteAccountRequest identifies the account to delete.
type DeleteAccountRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.accountService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Account: toAccountResponse(result.Account),
		Token:   result.Token,
	})
}

// Login godoc
// @Summary Log in
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /accounts/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.accountService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Account: toAccountResponse(result.Account),
		Token:   result.Token,
	})
}

// List godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AccountResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accountService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toAccountResponses(accounts))
}

// Get godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} AccountResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	account, err := h.accountService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// UpdateProfile godoc
// @Summary Update the caller's name
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "New name and current password"
// @Success 200 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/update [put]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.accountService.UpdateProfile(c.Request().Context(), caller, req.Name, req.Password)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/changepassword [put]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return respondError(err)
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.accountService.ChangePassword(c.Request().Context(), caller, req.OldPassword, req.NewPassword); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

// Delete godoc
// @Summary Delete an account
// @Description Deletes the account matching email once the password is confirmed. Board posts and saved images are removed with it.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteAccountRequest true "Account credentials"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/delete [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	var req DeleteAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.accountService.Delete(c.Request().Context(), req.Email, req.Password); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}
