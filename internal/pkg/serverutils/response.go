package serverutils

import "github.com/gofiber/fiber/v2"

// Response is the envelope every handler writes.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

func SuccessResponse(ctx *fiber.Ctx, code int, message string, data interface{}) error {
	return ctx.Status(code).JSON(Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(ctx *fiber.Ctx, code int, message string, details string) error {
	return ctx.Status(code).JSON(Response{
		Success: false,
		Code:    code,
		Message: message,
		Details: details,
	})
}
