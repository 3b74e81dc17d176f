// FILE: internal/controller/package_controller.go
package controller

import (
	"errors"

	"apto-gateway-be/internal/pkg/serverutils"
	"apto-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPackageController interface {
	RegisterRoutes(r fiber.Router)
	GetPackages(ctx *fiber.Ctx) error
	GetPackage(ctx *fiber.Ctx) error
}

type packageController struct {
	service service.IPackageService
}

func NewPackageController(service service.IPackageService) IPackageController {
	return &packageController{service: service}
}

func (c *packageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/package")
	h.Get("/", c.GetPackages)
	h.Get("/:id", c.GetPackage)
}

func (c *packageController) GetPackages(ctx *fiber.Ctx) error {
	res, err := c.service.GetPackages(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching packages", res))
}

func (c *packageController) GetPackage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid package id"))
	}

	res, err := c.service.GetPackage(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Package detail", res))
}
