package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/finance-service/internal/api/dto"
	"github.com/behnamfe76/finance-service/internal/service"
)

// BudgetsHandler manages budgets on the caller's accounts.
type BudgetsHandler struct {
	service *service.BudgetService
}

// NewBudgetsHandler constructs handler.
func NewBudgetsHandler(budgetService *service.BudgetService) *BudgetsHandler {
	return &BudgetsHandler{service: budgetService}
}

func (h *BudgetsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	budgets, err := h.service.List(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.Map(budgets, dto.NewBudgetResponse)})
}

func (h *BudgetsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.BudgetRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	budget, err := h.service.Create(c.UserContext(), p.UserID, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBudgetResponse(*budget)})
}

func (h *BudgetsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	budget, err := h.service.Get(c.UserContext(), p.UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBudgetResponse(*budget)})
}

func (h *BudgetsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req dto.BudgetRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	budget, err := h.service.Update(c.UserContext(), p.UserID, id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBudgetResponse(*budget)})
}

func (h *BudgetsHandler) Delete(c *fiber.Ctx) error {
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

// GoalsHandler manages savings goals on the caller's accounts.
type GoalsHandler struct {
	service *service.GoalService
}

// NewGoalsHandler constructs handler.
func NewGoalsHandler(goalService *service.GoalService) *GoalsHandler {
	return &GoalsHandler{service: goalService}
}

func (h *GoalsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	goals, err := h.service.List(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.Map(goals, dto.NewGoalResponse)})
}

func (h *GoalsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.GoalRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	goal, err := h.service.Create(c.UserContext(), p.UserID, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewGoalResponse(*goal)})
}

func (h *GoalsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	goal, err := h.service.Get(c.UserContext(), p.UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGoalResponse(*goal)})
}

func (h *GoalsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req dto.GoalRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	goal, err := h.service.Update(c.UserContext(), p.UserID, id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGoalResponse(*goal)})
}

func (h *GoalsHandler) Delete(c *fiber.Ctx) error {
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

// ReportsHandler serves aggregate views.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Summary GET /api/reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	accountID, err := queryID(c, "account_id")
	if err != nil {
		return err
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.UserContext(), p.UserID, service.ReportFilter{
		AccountID: accountID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSummaryResponse(*summary)})
}
