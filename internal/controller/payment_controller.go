// FILE: internal/controller/payment_controller.go
package controller

import (
	"errors"
	"io"

	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/pkg/serverutils"
	"apto-gateway-be/internal/service"
	"apto-gateway-be/pkg/checkout"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	CheckActivePackage(ctx *fiber.Ctx) error
	CreatePayment(ctx *fiber.Ctx) error
	ConfirmPayment(ctx *fiber.Ctx) error
	GetUserPayments(ctx *fiber.Ctx) error
	GetPayment(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment", serverutils.JwtMiddleware)
	h.Get("/check-active-package", c.CheckActivePackage)
	h.Post("/create", c.CreatePayment)
	h.Post("/confirm", c.ConfirmPayment)
	h.Get("/user/payments", c.GetUserPayments)
	h.Get("/:id", c.GetPayment)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *paymentController) CheckActivePackage(ctx *fiber.Ctx) error {
	res, err := c.service.CheckActivePackage(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Active package status", res))
}

func (c *paymentController) CreatePayment(ctx *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreatePayment(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		// The conflict payload carries the blocking subscription so the
		// client can render the comparison gate.
		if errors.Is(err, service.ErrHasActivePackage) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusConflict,
				"message": err.Error(),
				"data":    res,
			})
		}
		if errors.Is(err, service.ErrPackageNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment created", res))
}

func (c *paymentController) ConfirmPayment(ctx *fiber.Ctx) error {
	var req dto.ConfirmPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("proof_image")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "proof_image is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "unable to read proof_image"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "unable to read proof_image"))
	}

	proof := checkout.ProofFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}

	res, err := c.service.ConfirmPayment(ctx.Context(), currentUserId(ctx), &req, proof)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProofTooLarge), errors.Is(err, service.ErrProofInvalidType):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		case errors.Is(err, service.ErrPaymentNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrNotPaymentOwner):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		case errors.Is(err, service.ErrPaymentNotPending):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment confirmed, awaiting verification", res))
}

func (c *paymentController) GetUserPayments(ctx *fiber.Ctx) error {
	res, err := c.service.GetUserPayments(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("User payments", res))
}

func (c *paymentController) GetPayment(ctx *fiber.Ctx) error {
	paymentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid payment id"))
	}

	res, err := c.service.GetPayment(ctx.Context(), currentUserId(ctx), paymentId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrNotPaymentOwner):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment detail", res))
}
