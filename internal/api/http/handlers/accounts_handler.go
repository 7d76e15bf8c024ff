package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/finance-service/internal/api/dto"
	"github.com/behnamfe76/finance-service/internal/service"
)

// AccountsHandler manages the caller's accounts.
type AccountsHandler struct {
	service *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{service: accountService}
}

// List GET /api/accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	accounts, err := h.service.List(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.Map(accounts, dto.NewAccountResponse)})
}

// Create POST /api/accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.AccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.service.Create(c.UserContext(), p.UserID, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAccountResponse(*account)})
}

// Get GET /api/accounts/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	account, err := h.service.Get(c.UserContext(), p.UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(*account)})
}

// Update PUT/PATCH /api/accounts/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req dto.AccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.service.Update(c.UserContext(), p.UserID, id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(*account)})
}

// Delete DELETE /api/accounts/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), p.UserID, id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Account successfully deleted"})
}
