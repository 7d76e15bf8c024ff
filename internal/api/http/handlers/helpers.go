package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/finance-service/internal/api/dto"
	"github.com/behnamfe76/finance-service/internal/auth"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok || p == nil {
		return nil, apperrors.NewUnauthorized("authentication credentials were not provided")
	}
	return p, nil
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req dto.Validatable) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	return dto.ValidationError(req.Validate())
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("resource", nil)
	}
	return id, nil
}

// queryID parses an optional positive id query parameter.
func queryID(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError("invalid "+name, map[string]any{name: "must be a positive integer"})
	}
	return &id, nil
}

// queryDateRange reads from/to as inclusive calendar days.
func queryDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, perr := dto.ParseDate(raw)
		if perr != nil {
			return nil, nil, apperrors.NewValidationError("invalid from", map[string]any{"from": "must be a date in YYYY-MM-DD format"})
		}
		from = &t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, perr := dto.ParseDate(raw)
		if perr != nil {
			return nil, nil, apperrors.NewValidationError("invalid to", map[string]any{"to": "must be a date in YYYY-MM-DD format"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 0)
	offset = c.QueryInt("offset", 0)
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
