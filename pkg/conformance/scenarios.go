package conformance

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.careerquest/pkg/advisor"
	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/contract"
	"digital.vasic.careerquest/pkg/scenario"
)

// ScenarioCheck probes the recommendation engine with a skewed
// answer profile. Each probe runs on its own throwaway user so
// accumulated subject state never leaks into the scores. The
// backend's weighting is its own business: the probe verifies
// the recommendation is well-formed and drawn from the fixed
// career set, and reports the chosen career for inspection.
type ScenarioCheck struct {
	check.BaseCheck
	strategy scenario.Strategy
	contract *contract.Contract
}

// NewScenarioCheck creates a recommendation probe for the given
// strategy.
func NewScenarioCheck(
	id check.ID,
	strategy scenario.Strategy,
	ct *contract.Contract,
) *ScenarioCheck {
	return &ScenarioCheck{
		BaseCheck: check.NewBaseCheck(
			id,
			fmt.Sprintf("Scenario: %s", strategy.Name),
			fmt.Sprintf(
				"Probes the recommendation engine with a %s "+
					"answer profile", strategy.Name,
			),
			"scenarios",
			[]check.ID{IDListQuizzes},
		),
		strategy: strategy,
		contract: ct,
	}
}

// Validate requires the cached quiz catalog.
func (c *ScenarioCheck) Validate(ctx context.Context) error {
	if err := c.BaseCheck.Validate(ctx); err != nil {
		return err
	}
	return c.RequireCatalog()
}

// Execute creates a throwaway user, submits the strategy's
// answers, and verifies the recommendation.
func (c *ScenarioCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()

	user, err := c.Client().CreateUser(
		ctx,
		fmt.Sprintf("Scenario %s", c.strategy.Name),
		uniqueEmail(c.strategy.Name),
	)
	if err != nil {
		return c.FailedResult(
			start, "create probe user: "+err.Error(),
		), nil
	}

	answers := c.strategy.Generate(
		c.Session().Quizzes, c.contract.DefaultOption,
	)
	result, err := c.Client().SubmitQuiz(ctx, advisor.QuizSubmission{
		UserID:  user.ID,
		Answers: answers,
	})
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "one_of",
				Target:  "career",
				Values:  c.contract.CareersAny(),
				Message: "recommendation is from the fixed set",
			},
			{
				Type:    "url_prefix",
				Target:  "roadmap_url",
				Value:   c.contract.RoadmapURLPrefix,
				Message: "roadmap URL uses the contracted prefix",
			},
			{
				Type:    "has_keys",
				Target:  "category_scores",
				Values:  c.contract.CategoriesAny(),
				Message: "every skill category is scored",
			},
			{
				Type:    "positive",
				Target:  "points_earned",
				Message: "a full submission earns points",
			},
		},
		map[string]any{
			"career":          result.Recommendation.RecommendedCareer,
			"roadmap_url":     result.Recommendation.RoadmapURL,
			"category_scores": result.CategoryScores,
			"points_earned":   result.PointsEarned,
		},
	)

	outputs := map[string]string{
		"career":  result.Recommendation.RecommendedCareer,
		"target":  c.strategy.TargetCareer,
		"matched": fmt.Sprintf("%t", c.matchedTarget(result)),
	}
	return c.CreateResult(
		check.StatusPassed, start, results, outputs, "",
	), nil
}

// matchedTarget reports whether the recommendation landed on the
// strategy's expected career. Informational only.
func (c *ScenarioCheck) matchedTarget(
	r *advisor.SubmissionResult,
) bool {
	return r.Recommendation.RecommendedCareer == c.strategy.TargetCareer
}
