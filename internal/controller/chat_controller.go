package controller

import (
	"mockbot-be/internal/dto"
	"mockbot-be/internal/pkg/serverutils"
	"mockbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service       service.IChatService
	chatRateLimit fiber.Handler
}

func NewChatController(service service.IChatService, chatRateLimit fiber.Handler) IChatController {
	return &chatController{
		service:       service,
		chatRateLimit: chatRateLimit,
	}
}

// Chat is rate limited per IP and intentionally not behind JwtMiddleware.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/", c.chatRateLimit, c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Reply generated", res)
}
