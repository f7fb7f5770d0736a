package conformance

import (
	"context"
	"time"

	"digital.vasic.careerquest/pkg/check"
)

// HealthCheck verifies the backend answers on its root endpoint.
// Everything else in the suite depends on it directly or
// transitively.
type HealthCheck struct {
	check.BaseCheck
}

// NewHealthCheck creates the health check.
func NewHealthCheck() *HealthCheck {
	return &HealthCheck{
		BaseCheck: check.NewBaseCheck(
			IDHealth,
			"Health Check",
			"Verifies the backend root endpoint responds with 200",
			"infrastructure",
			nil,
		),
	}
}

// Execute calls the root endpoint. Any 200 response passes; the
// status message is optional and only reported as an output.
func (c *HealthCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()

	health, err := c.Client().Health(ctx)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	message := health.Message
	if message == "" {
		message = "OK"
	}
	outputs := map[string]string{"message": message}
	result := c.CreateResult(
		check.StatusPassed, start, nil, outputs, "",
	)
	return result, nil
}
