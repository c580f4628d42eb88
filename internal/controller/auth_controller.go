package controller

import (
	"mockbot-be/internal/dto"
	"mockbot-be/internal/pkg/serverutils"
	"mockbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	UploadProfileImage(ctx *fiber.Ctx) error
}

type authController struct {
	authService   service.IAuthService
	userService   service.IUserService
	authRateLimit fiber.Handler
}

func NewAuthController(authService service.IAuthService, userService service.IUserService, authRateLimit fiber.Handler) IAuthController {
	return &authController{
		authService:   authService,
		userService:   userService,
		authRateLimit: authRateLimit,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.authRateLimit, c.Register)
	h.Post("/login", c.authRateLimit, c.Login)

	h.Get("/profile", serverutils.JwtMiddleware, c.GetProfile)
	h.Put("/update-profile", serverutils.JwtMiddleware, c.UpdateProfile)
	h.Put("/change-password", serverutils.JwtMiddleware, c.ChangePassword)
	h.Post("/upload-profile-image", serverutils.JwtMiddleware, c.UploadProfileImage)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "User registered successfully.", res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Login successful", res)
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	return userId, nil
}

func (c *authController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "User profile", res)
}

func (c *authController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Profile updated", res)
}

func (c *authController) ChangePassword(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.userService.ChangePassword(ctx.UserContext(), userId, &req); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Password changed", nil)
}

func (c *authController) UploadProfileImage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("profileImage")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Image file is required")
	}

	url, err := c.userService.UploadProfileImage(ctx.UserContext(), userId, file)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Profile image uploaded", dto.UploadImageResponse{
		ImageURL: url,
	})
}
