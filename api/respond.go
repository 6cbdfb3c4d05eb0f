package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"grocery.GO/core/apperr"
	"grocery.GO/core/notify"
)

// Body is a JSON object response; notifications are always attached.
type Body map[string]interface{}

// OK writes body with the request's notifications.
func OK(c echo.Context, status int, body Body, notes *notify.Recorder) error {
	if body == nil {
		body = Body{}
	}
	body["notifications"] = notes.All()
	return c.JSON(status, body)
}

// Fail maps err to its HTTP status. Preconditions carry their redirect target.
func Fail(c echo.Context, err error, notes *notify.Recorder) error {
	body := Body{
		"error":         apperr.MessageOf(err, http.StatusText(apperr.HTTPStatus(err))),
		"notifications": notes.All(),
	}
	if r := apperr.RedirectOf(err); r != "" {
		body["redirect"] = r
	}
	return c.JSON(apperr.HTTPStatus(err), body)
}

// BadRequest is a validation failure raised by a handler before any service
// call; it is recorded as a notification too.
func BadRequest(c echo.Context, op, message string, notes *notify.Recorder) error {
	err := apperr.Validation(op, message)
	notes.Notify(notify.FromError(op, err, ""))
	return Fail(c, err, notes)
}
