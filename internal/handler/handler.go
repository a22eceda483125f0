package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"boardapi/internal/auth"
	apperrors "boardapi/internal/errors"
)

// ContextKeyClaims is where the JWT middleware stores *auth.Claims.
const ContextKeyClaims = "user"

// respondError converts err into an echo.HTTPError carrying the public
// ErrorResponse body. The underlying error stays attached for logging.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return respondError(apperrors.ErrInvalidBody)
	}
	if err := c.Validate(req); err != nil {
		return respondError(apperrors.New(apperrors.ErrValidation, err.Error(), "VALIDATION_FAILED"))
	}
	return nil
}

// callerID returns the authenticated account id, or ErrUnauthorized when the
// request carries no valid token.
func callerID(c echo.Context) (uint, error) {
	claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
	if !ok || claims == nil {
		return 0, apperrors.ErrUnauthorized
	}
	id, err := claims.AccountID()
	if err != nil {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}
