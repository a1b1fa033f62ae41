package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/validators"
)

// JSONErrorHandler converts every handler failure into the API's JSON error
// envelope: {"error": {"code", "message"}, "errors": {field: message}?}.
// Nothing propagates to the transport layer unwrapped.
func JSONErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var fields map[string]string

	var fieldErrs *validators.FieldErrors
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &fieldErrs):
		code = http.StatusBadRequest
		message = fieldErrs.Message
		fields = fieldErrs.Fields
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = fmt.Sprintf("%v", httpErr.Message)
		}
	default:
		message = err.Error()
	}

	body := echo.Map{"error": echo.Map{"code": code, "message": message}}
	if len(fields) > 0 {
		body["errors"] = fields
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if err := c.JSON(code, body); err != nil {
		c.Logger().Error(err)
	}
}
