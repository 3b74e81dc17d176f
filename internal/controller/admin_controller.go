// FILE: internal/controller/admin_controller.go
package controller

import (
	"errors"

	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/pkg/serverutils"
	"apto-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	authService    service.IAuthService
	adminService   service.IAdminService
	featureService service.IFeatureService
	packageService service.IPackageService
}

func NewAdminController(
	authService service.IAuthService,
	adminService service.IAdminService,
	featureService service.IFeatureService,
	packageService service.IPackageService,
) IAdminController {
	return &adminController{
		authService:    authService,
		adminService:   adminService,
		featureService: featureService,
		packageService: packageService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/login", c.Login)

	protected := h.Group("/", serverutils.AdminMiddleware)
	protected.Get("/dashboard", c.GetDashboard)
	protected.Get("/transactions", c.GetTransactions)
	protected.Post("/payments/:id/verify", c.VerifyPayment)

	protected.Post("/features", c.CreateFeature)
	protected.Put("/features/:id", c.UpdateFeature)
	protected.Delete("/features/:id", c.DeleteFeature)

	protected.Post("/packages", c.CreatePackage)
	protected.Put("/packages/:id", c.UpdatePackage)
	protected.Post("/packages/:id/features", c.AssignFeature)
	protected.Delete("/packages/:id/features/:featureId", c.RemoveFeature)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.LoginAdmin(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin login successful", res))
}

func (c *adminController) GetDashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboardStats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", res))
}

func (c *adminController) GetTransactions(ctx *fiber.Ctx) error {
	var query dto.AdminPaymentListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	packageId := uuid.Nil
	if query.PackageId != "" {
		packageId, _ = uuid.Parse(query.PackageId)
	}

	res, err := c.adminService.GetTransactions(ctx.Context(), query.Page, query.Limit, query.Status, query.Method, packageId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Transactions", res))
}

func (c *adminController) VerifyPayment(ctx *fiber.Ctx) error {
	paymentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid payment id"))
	}

	var req dto.VerifyPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.adminService.VerifyPayment(ctx.Context(), paymentId, &req); err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	message := "Payment rejected"
	if req.Approve {
		message = "Payment verified and package activated"
	}
	return ctx.JSON(serverutils.SuccessResponse[any](message, nil))
}

func (c *adminController) CreateFeature(ctx *fiber.Ctx) error {
	var req dto.CreateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.featureService.CreateFeature(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature created", res))
}

func (c *adminController) UpdateFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid feature id"))
	}

	var req dto.UpdateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.featureService.UpdateFeature(ctx.Context(), id, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature updated", res))
}

func (c *adminController) DeleteFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid feature id"))
	}

	if err := c.featureService.DeleteFeature(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature deleted", nil))
}

func (c *adminController) CreatePackage(ctx *fiber.Ctx) error {
	var req dto.CreatePackageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.packageService.CreatePackage(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Package created", res))
}

func (c *adminController) UpdatePackage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid package id"))
	}

	var req dto.UpdatePackageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.packageService.UpdatePackage(ctx.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Package updated", res))
}

func (c *adminController) AssignFeature(ctx *fiber.Ctx) error {
	packageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid package id"))
	}

	var req dto.AssignPackageFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.packageService.AssignFeature(ctx.Context(), packageId, req.FeatureId); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature assigned to package", nil))
}

func (c *adminController) RemoveFeature(ctx *fiber.Ctx) error {
	packageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid package id"))
	}
	featureId, err := uuid.Parse(ctx.Params("featureId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid feature id"))
	}

	if err := c.packageService.RemoveFeature(ctx.Context(), packageId, featureId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature removed from package", nil))
}
