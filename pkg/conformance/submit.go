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

// SubmitQuizCheck submits a full answer set for the subject user
// using the creativity strategy and verifies scoring,
// gamification state, and the attached recommendation.
type SubmitQuizCheck struct {
	check.BaseCheck
	contract *contract.Contract
}

// NewSubmitQuizCheck creates the submit-quiz check.
func NewSubmitQuizCheck(
	ct *contract.Contract,
) *SubmitQuizCheck {
	return &SubmitQuizCheck{
		BaseCheck: check.NewBaseCheck(
			IDSubmitQuiz,
			"Submit Quiz",
			"Submits a full answer set and verifies scoring and "+
				"recommendation",
			"quizzes",
			[]check.ID{IDCreateUser, IDListQuizzes},
		),
		contract: ct,
	}
}

// Validate requires the subject user and the cached catalog.
func (c *SubmitQuizCheck) Validate(ctx context.Context) error {
	if err := c.BaseCheck.Validate(ctx); err != nil {
		return err
	}
	if err := c.RequireSubject(); err != nil {
		return err
	}
	return c.RequireCatalog()
}

// Execute submits the generated answers and scores the result.
func (c *SubmitQuizCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()

	answers := scenario.CreativityProblemSolving.Generate(
		c.Session().Quizzes, c.contract.DefaultOption,
	)
	result, err := c.Client().SubmitQuiz(ctx, advisor.QuizSubmission{
		UserID:  c.Session().SubjectID,
		Answers: answers,
	})
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	results := c.EvaluateAll(
		c.submissionAssertions(),
		submissionValues(result),
	)

	outputs := map[string]string{
		"points_earned": fmt.Sprintf("%d", result.PointsEarned),
		"total_points":  fmt.Sprintf("%d", result.TotalPoints),
		"career":        result.Recommendation.RecommendedCareer,
		"confidence": fmt.Sprintf(
			"%.2f", result.Recommendation.Confidence,
		),
	}
	return c.CreateResult(
		check.StatusPassed, start, results, outputs, "",
	), nil
}

func (c *SubmitQuizCheck) submissionAssertions() []assertion.Definition {
	return []assertion.Definition{
		{
			Type:    "positive",
			Target:  "points_earned",
			Message: "a full submission earns points",
		},
		{
			Type:    "positive",
			Target:  "total_points",
			Message: "total points reflect the submission",
		},
		{
			Type:    "min_value",
			Target:  "level",
			Value:   1,
			Message: "level never drops below 1",
		},
		{
			Type:    "has_keys",
			Target:  "category_scores",
			Values:  c.contract.CategoriesAny(),
			Message: "every skill category is scored",
		},
		{
			Type:    "one_of",
			Target:  "career",
			Values:  c.contract.CareersAny(),
			Message: "recommended career is from the fixed set",
		},
		{
			Type:    "url_prefix",
			Target:  "roadmap_url",
			Value:   c.contract.RoadmapURLPrefix,
			Message: "roadmap URL uses the contracted prefix",
		},
		{
			Type:    "positive",
			Target:  "confidence",
			Message: "recommendation carries a confidence score",
		},
	}
}

func submissionValues(
	r *advisor.SubmissionResult,
) map[string]any {
	return map[string]any{
		"points_earned":   r.PointsEarned,
		"total_points":    r.TotalPoints,
		"level":           r.Level,
		"category_scores": r.CategoryScores,
		"career":          r.Recommendation.RecommendedCareer,
		"roadmap_url":     r.Recommendation.RoadmapURL,
		"confidence":      r.Recommendation.Confidence,
	}
}
