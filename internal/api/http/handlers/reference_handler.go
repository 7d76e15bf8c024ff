package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/finance-service/internal/api/dto"
	"github.com/behnamfe76/finance-service/internal/service"
)

// ReferenceHandler serves currencies, account types and categories.
type ReferenceHandler struct {
	service *service.ReferenceService
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(referenceService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: referenceService}
}

// Currencies GET /api/accounts/currencies.
func (h *ReferenceHandler) Currencies(c *fiber.Ctx) error {
	currencies, err := h.service.Currencies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.Map(currencies, dto.NewCurrencyResponse)})
}

// AccountTypes GET /api/accounts/types.
func (h *ReferenceHandler) AccountTypes(c *fiber.Ctx) error {
	types, err := h.service.AccountTypes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.Map(types, dto.NewAccountTypeResponse)})
}

// Categories GET /api/categories.
func (h *ReferenceHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.Map(categories, dto.NewCategoryResponse)})
}

// Category GET /api/categories/:id.
func (h *ReferenceHandler) Category(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	category, err := h.service.Category(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(*category)})
}
