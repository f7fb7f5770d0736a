package conformance

import (
	"context"
	"time"

	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/contract"
)

// ListRoadmapsCheck verifies the roadmap catalog: exact size,
// one roadmap per career, and the contracted URL prefix on each
// entry.
type ListRoadmapsCheck struct {
	check.BaseCheck
	contract *contract.Contract
}

// NewListRoadmapsCheck creates the list-roadmaps check.
func NewListRoadmapsCheck(
	ct *contract.Contract,
) *ListRoadmapsCheck {
	return &ListRoadmapsCheck{
		BaseCheck: check.NewBaseCheck(
			IDListRoadmaps,
			"Get Roadmaps",
			"Fetches the roadmap catalog and verifies size, "+
				"career coverage, and URL prefixes",
			"roadmaps",
			[]check.ID{IDSeedData},
		),
		contract: ct,
	}
}

// Execute fetches the full catalog.
func (c *ListRoadmapsCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()

	roadmaps, err := c.Client().ListRoadmaps(ctx)
	if err != nil {
		return c.FailedResult(start, err.Error()), nil
	}

	roles := make([]string, len(roadmaps))
	for i, r := range roadmaps {
		roles[i] = r.SkillRole
	}

	results := c.EvaluateAll(
		[]assertion.Definition{
			{
				Type:    "exact_count",
				Target:  "roadmaps",
				Value:   c.contract.RoadmapCount,
				Message: "catalog has the contracted size",
			},
			{
				Type:    "covers_all",
				Target:  "roles",
				Values:  c.contract.CareersAny(),
				Message: "every career has a roadmap",
			},
			{
				Type:    "no_duplicates",
				Target:  "roles",
				Message: "careers are not duplicated",
			},
		},
		map[string]any{
			"roadmaps": roles,
			"roles":    roles,
		},
	)

	for _, r := range roadmaps {
		urlResults := c.EvaluateAll(
			[]assertion.Definition{
				{
					Type:   "url_prefix",
					Target: "roadmap_url",
					Value:  c.contract.RoadmapURLPrefix,
					Message: "roadmap URL for " + r.SkillRole +
						" uses the contracted prefix",
				},
			},
			map[string]any{"roadmap_url": r.RoadmapURL},
		)
		results = append(results, urlResults...)
	}

	return c.CreateResult(
		check.StatusPassed, start, results, nil, "",
	), nil
}

// RoadmapLookupCheck round-trips every career through the
// by-career lookup endpoint and verifies the echo.
type RoadmapLookupCheck struct {
	check.BaseCheck
	contract *contract.Contract
}

// NewRoadmapLookupCheck creates the roadmap-lookup check.
func NewRoadmapLookupCheck(
	ct *contract.Contract,
) *RoadmapLookupCheck {
	return &RoadmapLookupCheck{
		BaseCheck: check.NewBaseCheck(
			IDRoadmapLookup,
			"Roadmap Lookup",
			"Looks up each career individually and verifies the "+
				"returned role",
			"roadmaps",
			[]check.ID{IDListRoadmaps},
		),
		contract: ct,
	}
}

// Execute looks up every contracted career.
func (c *RoadmapLookupCheck) Execute(
	ctx context.Context,
) (*check.Result, error) {
	start := time.Now()

	var results []assertion.Result
	for _, career := range c.contract.Careers {
		roadmap, err := c.Client().GetRoadmap(ctx, career)
		if err != nil {
			return c.FailedResult(
				start, "lookup "+career+": "+err.Error(),
			), nil
		}
		results = append(results, c.EvaluateAll(
			[]assertion.Definition{
				{
					Type:   "equals",
					Target: "skill_role",
					Value:  career,
					Message: "lookup for " + career +
						" returns the matching role",
				},
				{
					Type:   "url_prefix",
					Target: "roadmap_url",
					Value:  c.contract.RoadmapURLPrefix,
					Message: "roadmap URL for " + career +
						" uses the contracted prefix",
				},
			},
			map[string]any{
				"skill_role":  roadmap.SkillRole,
				"roadmap_url": roadmap.RoadmapURL,
			},
		)...)
	}

	return c.CreateResult(
		check.StatusPassed, start, results, nil, "",
	), nil
}
