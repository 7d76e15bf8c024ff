package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// RequireAuthenticated rejects anonymous and rejected callers with 401.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticatedOrError(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireStaff ensures the authenticated caller has the staff flag.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticatedOrError(c); err != nil {
			return err
		}
		principal, _ := PrincipalFromContext(c)
		if !principal.IsStaff {
			return apperrors.NewForbidden("staff privileges required")
		}
		return c.Next()
	}
}

func authenticatedOrError(c *fiber.Ctx) error {
	outcome := OutcomeFromContext(c)
	if outcome.LookupErr != nil {
		return apperrors.NewInternalError(outcome.LookupErr)
	}
	switch outcome.Kind {
	case OutcomeAuthenticated:
		return nil
	case OutcomeRejected:
		return apperrors.NewUnauthorizedReason(string(outcome.Reason), rejectionMessage(outcome.Reason))
	default:
		return apperrors.NewUnauthorized("authentication credentials were not provided")
	}
}

func rejectionMessage(reason Reason) string {
	switch reason {
	case ReasonExpiredToken:
		return "token expired"
	case ReasonUserNotFound:
		return "user not found"
	default:
		return "invalid token"
	}
}
