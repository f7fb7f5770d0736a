package conformance

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
)

// CreateUserCheck creates the subject user the rest of the suite
// operates on and verifies the fresh-account defaults.
type CreateUserCheck struct {
	check.BaseCheck
}

// NewCreateUserCheck creates the create-user check.
func NewCreateUserCheck() *CreateUserCheck {
	return &CreateUserCheck{
		BaseCheck: check.NewBaseCheck(
			IDCreateUser,
			"Create User",
			"Creates the subject user and verifies fresh-account "+
				"defaults",
			"users",
			[]check.ID{IDHealth},
		),
	}
}

// Execute creates the user and records it in the session.
func (c *CreateUserCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()
	name := "Test User"
	email := uniqueEmail("test_user")

	user, err := c.Client().CreateUser(ctx, name, email)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "not_empty",
				Target:  "id",
				Message: "new user has a non-empty id",
			},
			{
				Type:    "equals",
				Target:  "name",
				Value:   name,
				Message: "name echoes the request",
			},
			{
				Type:    "equals",
				Target:  "email",
				Value:   email,
				Message: "email echoes the request",
			},
			{
				Type:    "equals",
				Target:  "points",
				Value:   0,
				Message: "fresh user starts with zero points",
			},
			{
				Type:    "equals",
				Target:  "level",
				Value:   1,
				Message: "fresh user starts at level 1",
			},
			{
				Type:    "exact_count",
				Target:  "badges",
				Value:   0,
				Message: "fresh user has no badges",
			},
		},
		map[string]any{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"points": user.Points,
			"level":  user.Level,
			"badges": user.Badges,
		},
	)

	// Downstream checks need the subject even when a default
	// assertion failed; record it whenever the id is usable.
	if user.ID != "" {
		c.Session().SubjectID = user.ID
		c.Session().SubjectName = user.Name
	}

	outputs := map[string]string{
		"user_id": user.ID,
		"email":   user.Email,
	}
	return c.CreateResult(
		check.StatusPassed, start, results, outputs, "",
	), nil
}

// GetUserCheck fetches the subject user back and verifies the
// stored record matches what was created.
type GetUserCheck struct {
	check.BaseCheck
}

// NewGetUserCheck creates the get-user check.
func NewGetUserCheck() *GetUserCheck {
	return &GetUserCheck{
		BaseCheck: check.NewBaseCheck(
			IDGetUser,
			"Get User",
			"Fetches the subject user by id and verifies the echo",
			"users",
			[]check.ID{IDCreateUser},
		),
	}
}

// Validate requires the subject user to exist.
func (c *GetUserCheck) Validate(ctx context.Context) error {
	if err := c.BaseCheck.Validate(ctx); err != nil {
		return err
	}
	return c.RequireSubject()
}

// Execute fetches the subject and compares identity fields.
func (c *GetUserCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()
	subjectID := c.Session().SubjectID

	user, err := c.Client().GetUser(ctx, subjectID)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "equals",
				Target:  "id",
				Value:   subjectID,
				Message: "lookup returns the requested user",
			},
			{
				Type:    "equals",
				Target:  "name",
				Value:   c.Session().SubjectName,
				Message: "name matches the created user",
			},
		},
		map[string]any{
			"id":   user.ID,
			"name": user.Name,
		},
	)

	outputs := map[string]string{
		"points": fmt.Sprintf("%d", user.Points),
		"level":  fmt.Sprintf("%d", user.Level),
	}
	return c.CreateResult(
		check.StatusPassed, start, results, outputs, "",
	), nil
}
