package conformance

import (
	"context"
	"time"

	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
)

// SeedDataCheck triggers backend data seeding and verifies it is
// idempotent: a second call must succeed the same way without
// duplicating catalogs. Duplicate detection itself happens in
// the catalog checks, which count exact sizes after this ran
// twice.
type SeedDataCheck struct {
	check.BaseCheck
}

// NewSeedDataCheck creates the seed-data check.
func NewSeedDataCheck() *SeedDataCheck {
	return &SeedDataCheck{
		BaseCheck: check.NewBaseCheck(
			IDSeedData,
			"Initialize Sample Data",
			"Seeds quiz and roadmap catalogs, then re-seeds to "+
				"verify idempotence",
			"infrastructure",
			[]check.ID{IDHealth},
		),
	}
}

// Execute seeds twice and asserts both calls acknowledge.
func (c *SeedDataCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()

	first, err := c.Client().SeedData(ctx)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	second, err := c.Client().SeedData(ctx)
	if err != nil {
		return c.FailedResult(
			start, "re-seed failed: "+err.Error(),
		), nil
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "not_empty",
				Target:  "first_message",
				Message: "seeding returns an acknowledgement",
			},
			{
				Type:    "not_empty",
				Target:  "second_message",
				Message: "re-seeding returns an acknowledgement",
			},
		},
		map[string]any{
			"first_message":  first.Message,
			"second_message": second.Message,
		},
	)

	outputs := map[string]string{
		"first_message":  first.Message,
		"second_message": second.Message,
	}
	return c.CreateResult(
		check.StatusPassed, start, results, outputs, "",
	), nil
}
