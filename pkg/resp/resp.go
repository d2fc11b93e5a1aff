// Package resp writes the response envelope shared by every endpoint:
// {success: true, message?, data} on success and
// {success: false, message, errors?} on failure.
package resp

import (
	"github.com/labstack/echo/v4"
)

// OK writes a success envelope with data
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// OKMessage writes a success envelope with a message and data
func OKMessage(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "message": message, "data": data})
}

// Fail writes a failure envelope
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// FailFields writes a failure envelope carrying field-level errors
func FailFields(c echo.Context, status int, message string, fields interface{}) error {
	return c.JSON(status, echo.Map{"success": false, "message": message, "errors": fields})
}
