package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/finance-service/internal/api/dto"
	"github.com/behnamfe76/finance-service/internal/service"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// TransactionsHandler manages the caller's transactions.
type TransactionsHandler struct {
	service *service.TransactionService
}

// NewTransactionsHandler constructs handler.
func NewTransactionsHandler(transactionService *service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{service: transactionService}
}

// List GET /api/transactions.
func (h *TransactionsHandler) List(c *fiber.Ctx) error {
	filter, err := parseTransactionQuery(c)
	if err != nil {
		return err
	}
	return h.list(c, filter)
}

// ByAccount GET /api/transactions/by_account?account_id=.
func (h *TransactionsHandler) ByAccount(c *fiber.Ctx) error {
	filter, err := parseTransactionQuery(c)
	if err != nil {
		return err
	}
	if filter.AccountID == nil {
		return apperrors.NewValidationError("account_id parameter is required", map[string]any{"account_id": "this parameter is required"})
	}
	return h.list(c, filter)
}

// Recurring GET /api/transactions/recurring.
func (h *TransactionsHandler) Recurring(c *fiber.Ctx) error {
	filter, err := parseTransactionQuery(c)
	if err != nil {
		return err
	}
	filter.RecurringOnly = true
	return h.list(c, filter)
}

func (h *TransactionsHandler) list(c *fiber.Ctx, filter service.TransactionListFilter) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	txns, err := h.service.List(c.UserContext(), p.UserID, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.Map(txns, dto.NewTransactionResponse)})
}

// Create POST /api/transactions.
func (h *TransactionsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.TransactionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	txn, err := h.service.Create(c.UserContext(), p.UserID, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTransactionResponse(*txn)})
}

// Get GET /api/transactions/:id.
func (h *TransactionsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	txn, err := h.service.Get(c.UserContext(), p.UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(*txn)})
}

// Update PUT/PATCH /api/transactions/:id.
func (h *TransactionsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req dto.TransactionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	txn, err := h.service.Update(c.UserContext(), p.UserID, id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(*txn)})
}

// Delete DELETE /api/transactions/:id.
func (h *TransactionsHandler) Delete(c *fiber.Ctx) error {
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
	return c.SendStatus(http.StatusNoContent)
}

func parseTransactionQuery(c *fiber.Ctx) (service.TransactionListFilter, error) {
	filter := service.TransactionListFilter{}
	accountID, err := queryID(c, "account_id")
	if err != nil {
		return filter, err
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		return filter, err
	}
	filter.AccountID = accountID
	filter.From = from
	filter.To = to
	filter.Limit, filter.Offset = pagination(c)
	return filter, nil
}
