package conformance

import (
	"context"
	"time"

	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/contract"
)

// ListQuizzesCheck verifies the quiz catalog: exact size, unique
// ids, full category coverage, and well-formed options. A
// passing run caches the catalog in the session for the
// submission checks.
type ListQuizzesCheck struct {
	check.BaseCheck
	contract *contract.Contract
}

// NewListQuizzesCheck creates the list-quizzes check.
func NewListQuizzesCheck(
	ct *contract.Contract,
) *ListQuizzesCheck {
	return &ListQuizzesCheck{
		BaseCheck: check.NewBaseCheck(
			IDListQuizzes,
			"Get Quizzes",
			"Fetches the quiz catalog and verifies size, "+
				"uniqueness, and category coverage",
			"quizzes",
			[]check.ID{IDSeedData},
		),
		contract: ct,
	}
}

// Execute fetches the catalog and caches it on success.
func (c *ListQuizzesCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()

	quizzes, err := c.Client().ListQuizzes(ctx)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	ids := make([]string, len(quizzes))
	categories := make([]string, len(quizzes))
	for i, q := range quizzes {
		ids[i] = q.ID
		categories[i] = q.Category
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "exact_count",
				Target:  "quizzes",
				Value:   c.contract.QuizCount,
				Message: "catalog has the contracted size",
			},
			{
				Type:    "no_duplicates",
				Target:  "ids",
				Message: "quiz ids are unique",
			},
			{
				Type:    "covers_all",
				Target:  "categories",
				Values:  c.contract.CategoriesAny(),
				Message: "every skill category is represented",
			},
		},
		map[string]any{
			"quizzes":    ids,
			"ids":        ids,
			"categories": categories,
		},
	)

	// Each entry needs a scorable correct option for the answer
	// strategies to target.
	for _, q := range quizzes {
		optResults := c.EvaluateAll(
			[]assertion.Definition{
				{
					Type:   "one_of",
					Target: "correct_option",
					Values: []any{"a", "b", "c", "d"},
					Message: "correct option of quiz " +
						q.ID + " is a known key",
				},
			},
			map[string]any{"correct_option": q.CorrectOption},
		)
		results = append(results, optResults...)
	}

	passedAll := true
	for _, r := range results {
		if !r.Passed {
			passedAll = false
			break
		}
	}
	if passedAll {
		c.Session().Quizzes = quizzes
	}

	return c.CreateResult(
		check.StatusPassed, start, results, nil, "",
	), nil
}
