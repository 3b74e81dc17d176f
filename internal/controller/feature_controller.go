// FILE: internal/controller/feature_controller.go
package controller

import (
	"apto-gateway-be/internal/pkg/serverutils"
	"apto-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeatureController interface {
	RegisterRoutes(r fiber.Router)
	GetCatalog(ctx *fiber.Ctx) error
}

type featureController struct {
	entitlementService service.IEntitlementService
}

func NewFeatureController(entitlementService service.IEntitlementService) IFeatureController {
	return &featureController{entitlementService: entitlementService}
}

func (c *featureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feature")
	h.Get("/", c.GetCatalog)
}

// GetCatalog is public: the landing page renders the tool grid before
// anyone logs in.
func (c *featureController) GetCatalog(ctx *fiber.Ctx) error {
	res, err := c.entitlementService.GetCatalog(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature catalog", res))
}
