package conformance

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/contract"
)

// AddPointsCheck awards bonus points to the subject user via the
// gamification endpoint and verifies the returned delta and
// badge state.
type AddPointsCheck struct {
	check.BaseCheck
	contract *contract.Contract
}

// NewAddPointsCheck creates the add-points check.
func NewAddPointsCheck(
	ct *contract.Contract,
) *AddPointsCheck {
	return &AddPointsCheck{
		BaseCheck: check.NewBaseCheck(
			IDAddPoints,
			"Add Points",
			"Awards bonus points and verifies the delta and "+
				"badge state",
			"gamification",
			[]check.ID{IDSubmitQuiz},
		),
		contract: ct,
	}
}

// Validate requires the subject user to exist.
func (c *AddPointsCheck) Validate(ctx context.Context) error {
	if err := c.BaseCheck.Validate(ctx); err != nil {
		return err
	}
	return c.RequireSubject()
}

// Execute awards the badge threshold worth of points. The
// subject already earned points from the quiz submission, so the
// resulting total is always past the threshold.
func (c *AddPointsCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()
	award := c.contract.QuizMasterThreshold

	points, err := c.Client().AddPoints(
		ctx, c.Session().SubjectID, award,
	)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "equals",
				Target:  "points_added",
				Value:   award,
				Message: "awarded points match the request",
			},
			{
				Type:    "min_value",
				Target:  "total_points",
				Value:   award,
				Message: "total includes the awarded points",
			},
			{
				Type:   "contains",
				Target: "badges",
				Value:  c.contract.QuizMasterBadge,
				Message: fmt.Sprintf(
					"%q badge is present past %d points",
					c.contract.QuizMasterBadge,
					c.contract.QuizMasterThreshold,
				),
			},
		},
		map[string]any{
			"points_added": points.PointsAdded,
			"total_points": points.TotalPoints,
			"badges":       points.Badges,
		},
	)

	outputs := map[string]string{
		"total_points": fmt.Sprintf("%d", points.TotalPoints),
		"level":        fmt.Sprintf("%d", points.Level),
	}
	return c.CreateResult(
		check.StatusPassed, start, results, outputs, "",
	), nil
}

// BadgeAwardCheck verifies the badge threshold in isolation: a
// fresh user awarded exactly the threshold must hold the badge,
// independent of any quiz activity.
type BadgeAwardCheck struct {
	check.BaseCheck
	contract *contract.Contract
}

// NewBadgeAwardCheck creates the badge-award check.
func NewBadgeAwardCheck(
	ct *contract.Contract,
) *BadgeAwardCheck {
	return &BadgeAwardCheck{
		BaseCheck: check.NewBaseCheck(
			IDBadgeAward,
			"Badge Award Threshold",
			"Verifies a fresh user awarded the threshold exactly "+
				"receives the badge",
			"gamification",
			[]check.ID{IDHealth},
		),
		contract: ct,
	}
}

// Execute creates a throwaway user and awards the exact
// threshold.
func (c *BadgeAwardCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()
	threshold := c.contract.QuizMasterThreshold

	user, err := c.Client().CreateUser(
		ctx, "Badge Probe", uniqueEmail("badge_probe"),
	)
	if err != nil {
		return c.FailedResult(
			start, "create probe user: "+err.Error(),
		), nil
	}

	points, err := c.Client().AddPoints(ctx, user.ID, threshold)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "equals",
				Target:  "points_added",
				Value:   threshold,
				Message: "awarded points match the request",
			},
			{
				Type:    "equals",
				Target:  "total_points",
				Value:   threshold,
				Message: "fresh user total equals the award",
			},
			{
				Type:   "contains",
				Target: "badges",
				Value:  c.contract.QuizMasterBadge,
				Message: fmt.Sprintf(
					"badge appears at exactly %d points",
					threshold,
				),
			},
		},
		map[string]any{
			"points_added": points.PointsAdded,
			"total_points": points.TotalPoints,
			"badges":       points.Badges,
		},
	)

	outputs := map[string]string{"probe_user_id": user.ID}
	return c.CreateResult(
		check.StatusPassed, start, results, outputs, "",
	), nil
}
