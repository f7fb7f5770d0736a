// Package scenario builds complete quiz-answer sets from the
// cached catalog using named strategies. Generation is pure:
// the same catalog and strategy always produce the same answers,
// with no randomness and no I/O.
package scenario

import (
	"fmt"

	"digital.vasic.careerquest/pkg/advisor"
)

// Strategy is a rule for constructing a full answer set biased
// toward certain skill categories. For quizzes whose category is
// boosted, the question's own correct option is selected; for
// all other quizzes the default option is used.
type Strategy struct {
	// Name is the strategy tag.
	Name string

	// Boosted is the set of categories answered correctly.
	Boosted []string

	// TargetCareer is the career the strategy aims to steer the
	// recommendation toward. Informational: the backend's
	// scoring rule is not part of the published contract, so
	// checks only require a valid career.
	TargetCareer string
}

// Defined strategies, mirroring the recommendation probes the
// suite runs.
var (
	CreativityProblemSolving = Strategy{
		Name:         "creativity_problem_solving",
		Boosted:      []string{"problem_solving", "creativity"},
		TargetCareer: "Web Developer",
	}

	AnalyticsHigh = Strategy{
		Name:         "analytics_high",
		Boosted:      []string{"analytics", "problem_solving"},
		TargetCareer: "Data Scientist",
	}

	LeadershipCommunication = Strategy{
		Name:         "leadership_communication",
		Boosted:      []string{"leadership", "communication"},
		TargetCareer: "Entrepreneur",
	}
)

// All returns every defined strategy.
func All() []Strategy {
	return []Strategy{
		CreativityProblemSolving,
		AnalyticsHigh,
		LeadershipCommunication,
	}
}

// ByName looks up a defined strategy by its tag.
func ByName(name string) (Strategy, error) {
	for _, s := range All() {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("unknown strategy: %s", name)
}

// boosts reports whether the category is in the boosted set.
func (s Strategy) boosts(category string) bool {
	for _, c := range s.Boosted {
		if c == category {
			return true
		}
	}
	return false
}

// Generate produces one answer per catalog entry, in catalog
// order. defaultOption is the option selected for non-boosted
// categories (the contract's default, "a").
func (s Strategy) Generate(
	catalog []advisor.QuizQuestion,
	defaultOption string,
) []advisor.QuizAnswer {
	answers := make([]advisor.QuizAnswer, 0, len(catalog))
	for _, quiz := range catalog {
		selected := defaultOption
		if s.boosts(quiz.Category) {
			selected = quiz.CorrectOption
		}
		answers = append(answers, advisor.QuizAnswer{
			QuizID:         quiz.ID,
			SelectedOption: selected,
		})
	}
	return answers
}
