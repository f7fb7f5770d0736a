package check

import "digital.vasic.careerquest/pkg/advisor"

// Session is the mutable state shared by all checks in one run.
// It is owned by the runner and accessed strictly sequentially,
// so no locking is required. Checks that depend on a field must
// tolerate it being unset when an upstream check failed, and
// fail fast with a descriptive message instead of faulting.
type Session struct {
	// SubjectID is the primary test user created during the
	// run. Empty until the create-user check passes.
	SubjectID string

	// SubjectName is the name the subject was created with,
	// used by the get-user echo check.
	SubjectName string

	// Quizzes is the quiz catalog fetched once by the
	// list-quizzes check. Read-only after population.
	Quizzes []advisor.QuizQuestion
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// HasSubject reports whether a subject user has been created.
func (s *Session) HasSubject() bool {
	return s.SubjectID != ""
}

// HasCatalog reports whether the quiz catalog has been cached.
func (s *Session) HasCatalog() bool {
	return len(s.Quizzes) > 0
}
