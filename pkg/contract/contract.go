// Package contract captures the externally-agreed advisor
// backend contract as data: fixed career and category sets,
// catalog sizes, gamification thresholds, and the roadmap URL
// prefix. Defaults match the published contract; a YAML file can
// override them so the suite tracks contract revisions without a
// rebuild.
package contract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Contract describes the verifiable surface of the advisor
// backend.
type Contract struct {
	// Careers is the fixed set of recommendable careers. Every
	// recommendation and roadmap role must come from this set.
	Careers []string `yaml:"careers" json:"careers"`

	// Categories is the fixed set of quiz skill categories.
	Categories []string `yaml:"categories" json:"categories"`

	// QuizCount is the exact size of the quiz catalog.
	QuizCount int `yaml:"quiz_count" json:"quiz_count"`

	// RoadmapCount is the exact size of the roadmap catalog.
	RoadmapCount int `yaml:"roadmap_count" json:"roadmap_count"`

	// RoadmapURLPrefix is the required prefix of every roadmap
	// URL.
	RoadmapURLPrefix string `yaml:"roadmap_url_prefix" json:"roadmap_url_prefix"`

	// QuizMasterBadge is the badge awarded at the points
	// threshold.
	QuizMasterBadge string `yaml:"quiz_master_badge" json:"quiz_master_badge"`

	// QuizMasterThreshold is the cumulative points total at
	// which the badge must be present.
	QuizMasterThreshold int `yaml:"quiz_master_threshold" json:"quiz_master_threshold"`

	// DefaultOption is the option scenario strategies select
	// for non-boosted categories.
	DefaultOption string `yaml:"default_option" json:"default_option"`
}

// Default returns the published advisor contract.
func Default() *Contract {
	return &Contract{
		Careers: []string{
			"Web Developer",
			"Flutter Developer",
			"Data Scientist",
			"Cybersecurity Specialist",
			"Entrepreneur",
		},
		Categories: []string{
			"problem_solving",
			"creativity",
			"leadership",
			"analytics",
			"communication",
		},
		QuizCount:           10,
		RoadmapCount:        5,
		RoadmapURLPrefix:    "https://roadmap.sh/",
		QuizMasterBadge:     "Quiz Master",
		QuizMasterThreshold: 50,
		DefaultOption:       "a",
	}
}

// Load reads a contract override from a YAML file. Fields left
// empty in the file keep their default values.
func Load(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract file %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse contract file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("contract file %s: %w", path, err)
	}
	return c, nil
}

// Validate checks internal consistency.
func (c *Contract) Validate() error {
	if len(c.Careers) == 0 {
		return fmt.Errorf("careers must not be empty")
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}
	if c.QuizCount <= 0 {
		return fmt.Errorf("quiz_count must be positive")
	}
	if c.RoadmapCount != len(c.Careers) {
		return fmt.Errorf(
			"roadmap_count %d does not match %d careers",
			c.RoadmapCount, len(c.Careers),
		)
	}
	if c.RoadmapURLPrefix == "" {
		return fmt.Errorf("roadmap_url_prefix must not be empty")
	}
	if c.QuizMasterBadge == "" {
		return fmt.Errorf("quiz_master_badge must not be empty")
	}
	if c.QuizMasterThreshold <= 0 {
		return fmt.Errorf("quiz_master_threshold must be positive")
	}
	if c.DefaultOption == "" {
		return fmt.Errorf("default_option must not be empty")
	}
	return nil
}

// HasCareer reports whether career is in the fixed set.
func (c *Contract) HasCareer(career string) bool {
	for _, want := range c.Careers {
		if want == career {
			return true
		}
	}
	return false
}

// CareersAny returns the career set as []any for assertion
// definitions.
func (c *Contract) CareersAny() []any {
	return toAny(c.Careers)
}

// CategoriesAny returns the category set as []any for assertion
// definitions.
func (c *Contract) CategoriesAny() []any {
	return toAny(c.Categories)
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
