// Package conformance contains the check suite for the career
// advisor backend: one check per verified behavior, wired
// together through a shared session and a fixed execution order.
package conformance

import (
	"fmt"

	"github.com/google/uuid"

	"digital.vasic.careerquest/pkg/advisor"
	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/contract"
	"digital.vasic.careerquest/pkg/logging"
	"digital.vasic.careerquest/pkg/registry"
	"digital.vasic.careerquest/pkg/scenario"
)

// Check IDs in suite order.
const (
	IDHealth         check.ID = "health"
	IDSeedData       check.ID = "seed-data"
	IDCreateUser     check.ID = "create-user"
	IDGetUser        check.ID = "get-user"
	IDListQuizzes    check.ID = "list-quizzes"
	IDSubmitQuiz     check.ID = "submit-quiz"
	IDAddPoints      check.ID = "add-points"
	IDBadgeAward     check.ID = "badge-award"
	IDListRoadmaps   check.ID = "list-roadmaps"
	IDRoadmapLookup  check.ID = "roadmap-lookup"
	IDScenarioData   check.ID = "scenario-analytics"
	IDScenarioLeader check.ID = "scenario-leadership"
)

// DefaultOrder is the canonical execution order of the suite.
// It respects every dependency declared by the checks.
func DefaultOrder() []check.ID {
	return []check.ID{
		IDHealth,
		IDSeedData,
		IDCreateUser,
		IDGetUser,
		IDListQuizzes,
		IDSubmitQuiz,
		IDAddPoints,
		IDBadgeAward,
		IDListRoadmaps,
		IDRoadmapLookup,
		IDScenarioData,
		IDScenarioLeader,
	}
}

// Suite bundles the full conformance check set with the shared
// state they operate on.
type Suite struct {
	Registry registry.Registry
	Session  *check.Session
	Client   *advisor.Client
	Contract *contract.Contract
}

// SuiteOption customizes suite construction.
type SuiteOption func(*suiteSettings)

type suiteSettings struct {
	logger   logging.Logger
	contract *contract.Contract
}

// WithLogger sets the logger injected into every check.
func WithLogger(l logging.Logger) SuiteOption {
	return func(s *suiteSettings) { s.logger = l }
}

// WithContract overrides the default backend contract.
func WithContract(c *contract.Contract) SuiteOption {
	return func(s *suiteSettings) { s.contract = c }
}

// NewSuite builds the registry of all conformance checks, wired
// to the given client and a fresh session.
func NewSuite(client *advisor.Client, opts ...SuiteOption) (*Suite, error) {
	settings := &suiteSettings{
		logger:   logging.NewNullLogger(),
		contract: contract.Default(),
	}
	for _, opt := range opts {
		opt(settings)
	}
	if err := settings.contract.Validate(); err != nil {
		return nil, fmt.Errorf("contract: %w", err)
	}

	suite := &Suite{
		Registry: registry.NewRegistry(),
		Session:  check.NewSession(),
		Client:   client,
		Contract: settings.contract,
	}

	engine := assertion.NewEngine()
	checks := []check.Check{
		NewHealthCheck(),
		NewSeedDataCheck(),
		NewCreateUserCheck(),
		NewGetUserCheck(),
		NewListQuizzesCheck(suite.Contract),
		NewSubmitQuizCheck(suite.Contract),
		NewAddPointsCheck(suite.Contract),
		NewBadgeAwardCheck(suite.Contract),
		NewListRoadmapsCheck(suite.Contract),
		NewRoadmapLookupCheck(suite.Contract),
		NewScenarioCheck(
			IDScenarioData, scenario.AnalyticsHigh, suite.Contract,
		),
		NewScenarioCheck(
			IDScenarioLeader, scenario.LeadershipCommunication,
			suite.Contract,
		),
	}

	for _, c := range checks {
		wireCheck(c, suite, settings.logger, engine)
		if err := suite.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("register %s: %w", c.ID(), err)
		}
	}

	if err := suite.Registry.ValidateDependencies(); err != nil {
		return nil, fmt.Errorf("suite dependencies: %w", err)
	}
	return suite, nil
}

// wirable is the setter surface every suite check exposes by
// embedding check.BaseCheck.
type wirable interface {
	SetClient(*advisor.Client)
	SetSession(*check.Session)
	SetLogger(logging.Logger)
	SetEngine(*assertion.Engine)
}

func wireCheck(
	c check.Check,
	suite *Suite,
	logger logging.Logger,
	engine *assertion.Engine,
) {
	w, ok := c.(wirable)
	if !ok {
		return
	}
	w.SetClient(suite.Client)
	w.SetSession(suite.Session)
	w.SetLogger(logger)
	w.SetEngine(engine)
}

// uniqueEmail builds a collision-free email so repeated runs
// against the same backend never trip duplicate-account logic.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf(
		"%s_%s@example.com", prefix, uuid.NewString()[:8],
	)
}
