package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/observability"
)

const (
	principalKey = "auth_principal"
	outcomeKey   = "auth_outcome"
)

// AuthMiddleware runs the authenticator on every request and stores the outcome.
// Enforcement is left to the Require* guards so public routes can share it. A user
// store failure only fails guarded routes.
type AuthMiddleware struct {
	authenticator *Authenticator
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(authenticator *Authenticator, metrics *observability.Metrics, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{authenticator: authenticator, metrics: metrics, logger: logger}
}

// Handle authenticates the request.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	outcome, err := m.authenticator.Authenticate(c.UserContext(), fiberCredentials{c: c})
	if err != nil {
		m.logger.Warn("user lookup failed during authentication",
			zap.String("path", c.Path()),
			zap.Error(err))
		outcome = Unresolved(err)
		m.metrics.RecordAuthOutcome("unresolved", "lookup_failed")
	} else {
		m.metrics.RecordAuthOutcome(outcome.Kind.String(), string(outcome.Reason))
	}

	if outcome.Kind == OutcomeRejected {
		m.logger.Debug("credential rejected",
			zap.String("path", c.Path()),
			zap.String("reason", string(outcome.Reason)),
			zap.Error(outcome.Err))
	}

	c.Locals(outcomeKey, outcome)
	if outcome.Principal != nil {
		c.Locals(principalKey, outcome.Principal)
	}
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// OutcomeFromContext retrieves the authentication decision, Anonymous when unset.
func OutcomeFromContext(c *fiber.Ctx) Outcome {
	if outcome, ok := c.Locals(outcomeKey).(Outcome); ok {
		return outcome
	}
	return Anonymous()
}

type fiberCredentials struct {
	c *fiber.Ctx
}

func (f fiberCredentials) Cookie(name string) string { return f.c.Cookies(name) }
func (f fiberCredentials) Header(name string) string { return f.c.Get(name) }
