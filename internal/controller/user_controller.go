// FILE: internal/controller/user_controller.go
package controller

import (
	"errors"

	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/pkg/serverutils"
	"apto-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetFeatureAccessStatus(ctx *fiber.Ctx) error
	GetFeatureAccessDetails(ctx *fiber.Ctx) error
	GetTokens(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
}

type userController struct {
	entitlementService service.IEntitlementService
	packageService     service.IPackageService
	userService        service.IUserService
}

func NewUserController(entitlementService service.IEntitlementService, packageService service.IPackageService, userService service.IUserService) IUserController {
	return &userController{
		entitlementService: entitlementService,
		packageService:     packageService,
		userService:        userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users", serverutils.JwtMiddleware)
	h.Get("/feature-access-status", c.GetFeatureAccessStatus)
	h.Get("/feature-access-details", c.GetFeatureAccessDetails)
	h.Get("/tokens", c.GetTokens)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
}

func (c *userController) GetFeatureAccessStatus(ctx *fiber.Ctx) error {
	res, err := c.entitlementService.GetAccessStatus(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature access status", res))
}

func (c *userController) GetFeatureAccessDetails(ctx *fiber.Ctx) error {
	res, err := c.entitlementService.GetAccessDetails(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature access details", res))
}

func (c *userController) GetTokens(ctx *fiber.Ctx) error {
	res, err := c.packageService.GetUserTokens(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Package tokens", res))
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	res, err := c.userService.GetProfile(ctx.Context(), currentUserId(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}
