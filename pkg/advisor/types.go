// Package advisor provides a typed HTTP client for the career
// and education advisor backend. Each endpoint has one wrapper
// method that performs a single attempt with a bounded timeout
// and classifies failures into transport, protocol, and
// contract errors.
package advisor

// User is an advisor account as returned by the users endpoints.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Points    int      `json:"points"`
	Level     int      `json:"level"`
	Badges    []string `json:"badges"`
	CreatedAt string   `json:"created_at"`
}

// QuizQuestion is a single entry of the quiz catalog. Options are
// keyed "a" through "d"; Category is one of the five skill
// categories the backend scores.
type QuizQuestion struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
	Category      string `json:"category"`
}

// QuizAnswer pairs a catalog entry with the option selected for it.
type QuizAnswer struct {
	QuizID         string `json:"quiz_id"`
	SelectedOption string `json:"selected_option"`
}

// QuizSubmission is the request body for the submit-quiz endpoint.
type QuizSubmission struct {
	UserID  string       `json:"user_id"`
	Answers []QuizAnswer `json:"answers"`
}

// Recommendation is the career recommendation embedded in a
// submission result.
type Recommendation struct {
	RecommendedCareer string             `json:"recommended_career"`
	RoadmapURL        string             `json:"roadmap_url"`
	ScoreBreakdown    map[string]float64 `json:"score_breakdown"`
	Confidence        float64            `json:"confidence"`
}

// SubmissionResult is the outcome of a quiz submission: points,
// gamification state, per-category scores, and the recommendation.
type SubmissionResult struct {
	PointsEarned   int                `json:"points_earned"`
	TotalPoints    int                `json:"total_points"`
	Level          int                `json:"level"`
	Badges         []string           `json:"badges"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Recommendation Recommendation     `json:"recommendation"`
}

// PointsResult is the outcome of an add-points call.
type PointsResult struct {
	PointsAdded int      `json:"points_added"`
	TotalPoints int      `json:"total_points"`
	Level       int      `json:"level"`
	Badges      []string `json:"badges"`
}

// Roadmap is a single career roadmap catalog entry.
type Roadmap struct {
	ID          string `json:"id"`
	SkillRole   string `json:"skill_role"`
	RoadmapURL  string `json:"roadmap_url"`
	Description string `json:"description"`
}

// Health is the root endpoint response. Message is optional.
type Health struct {
	Message string `json:"message"`
}

// SeedResult is the init-data endpoint response.
type SeedResult struct {
	Message string `json:"message"`
}
