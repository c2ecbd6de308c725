package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// MessageResponse writes the envelope with an explicit message.
func MessageResponse(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{Status: status, Message: message, Data: data})
}

// DataResponse writes the envelope using the standard status text as message.
func DataResponse(c echo.Context, status int, data interface{}) error {
	return MessageResponse(c, status, http.StatusText(status), data)
}

func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// BadRequestResponse answers 400 with validation details as data.
func BadRequestResponse(c echo.Context, details interface{}) error {
	return DataResponse(c, http.StatusBadRequest, details)
}

func InternalServerErrorResponse(c echo.Context) error {
	return DataResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// AppErrorResponse writes err using its AppError status; the AppError message becomes
// the envelope message. Other errors answer a generic 500.
func AppErrorResponse(c echo.Context, err error) error {
	var ae *AppError
	if !errors.As(err, &ae) {
		return InternalServerErrorResponse(c)
	}
	return MessageResponse(c, ae.Status, ae.Message, []*AppError{ae})
}
