package conformance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.careerquest/pkg/advisor"
	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/contract"
	"digital.vasic.careerquest/pkg/runner"
)

// fakeAdvisor is an in-memory advisor backend covering every
// endpoint the suite exercises.
type fakeAdvisor struct {
	mu      sync.Mutex
	nextID  int
	users   map[string]*fakeUser
	quizzes []advisor.QuizQuestion
	careers []string

	// pointsSkew offsets the reported points_added delta to
	// simulate a backend that misreports the award.
	pointsSkew int
}

type fakeUser struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Points    int      `json:"points"`
	Level     int      `json:"level"`
	Badges    []string `json:"badges"`
	CreatedAt string   `json:"created_at"`
}

func newFakeAdvisor() *fakeAdvisor {
	f := &fakeAdvisor{
		users: make(map[string]*fakeUser),
		careers: []string{
			"Web Developer",
			"Flutter Developer",
			"Data Scientist",
			"Cybersecurity Specialist",
			"Entrepreneur",
		},
	}
	categories := []string{
		"problem_solving", "creativity", "leadership",
		"analytics", "communication",
	}
	options := []string{"b", "c", "d", "b", "c"}
	for i := 0; i < 10; i++ {
		cat := categories[i%len(categories)]
		f.quizzes = append(f.quizzes, advisor.QuizQuestion{
			ID:            fmt.Sprintf("quiz_%d", i+1),
			Question:      fmt.Sprintf("Question %d about %s?", i+1, cat),
			OptionA:       "Option A",
			OptionB:       "Option B",
			OptionC:       "Option C",
			OptionD:       "Option D",
			CorrectOption: options[i%len(options)],
			Category:      cat,
		})
	}
	return f
}

func (f *fakeAdvisor) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			writeBody(w, map[string]string{
				"message": "Career Advisor API",
			})
			return
		}
		f.route(w, r)
	})
	return mux
}

func (f *fakeAdvisor) route(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case path == "/init-data":
		writeBody(w, map[string]string{"message": "data seeded"})
	case path == "/users" && r.Method == http.MethodPost:
		f.createUser(w, r)
	case path == "/quizzes":
		writeBody(w, f.quizzes)
	case path == "/submit-quiz":
		f.submitQuiz(w, r)
	case path == "/roadmaps":
		writeBody(w, f.roadmaps())
	case strings.HasPrefix(path, "/roadmaps/"):
		f.getRoadmap(w, r)
	case strings.HasSuffix(path, "/add-points"):
		f.addPoints(w, r)
	case strings.HasPrefix(path, "/users/"):
		f.getUser(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAdvisor) createUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	f.nextID++
	u := &fakeUser{
		ID:        fmt.Sprintf("user_%d", f.nextID),
		Name:      body.Name,
		Email:     body.Email,
		Points:    0,
		Level:     1,
		Badges:    []string{},
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	f.users[u.ID] = u
	writeBody(w, u)
}

func (f *fakeAdvisor) getUser(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/users/")
	u, ok := f.users[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeBody(w, u)
}

func (f *fakeAdvisor) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var sub advisor.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	u, ok := f.users[sub.UserID]
	if !ok {
		http.NotFound(w, r)
		return
	}

	byID := make(map[string]advisor.QuizQuestion, len(f.quizzes))
	for _, q := range f.quizzes {
		byID[q.ID] = q
	}
	scores := map[string]float64{
		"problem_solving": 0, "creativity": 0, "leadership": 0,
		"analytics": 0, "communication": 0,
	}
	earned := 0
	topCat := "problem_solving"
	for _, a := range sub.Answers {
		q, ok := byID[a.QuizID]
		if !ok || a.SelectedOption != q.CorrectOption {
			continue
		}
		earned += 10
		scores[q.Category] += 50
		if scores[q.Category] > scores[topCat] {
			topCat = q.Category
		}
	}
	u.Points += earned
	f.checkBadge(u)

	career := map[string]string{
		"problem_solving": "Web Developer",
		"creativity":      "Flutter Developer",
		"leadership":      "Entrepreneur",
		"analytics":       "Data Scientist",
		"communication":   "Cybersecurity Specialist",
	}[topCat]

	writeBody(w, advisor.SubmissionResult{
		PointsEarned:   earned,
		TotalPoints:    u.Points,
		Level:          u.Level,
		Badges:         u.Badges,
		CategoryScores: scores,
		Recommendation: advisor.Recommendation{
			RecommendedCareer: career,
			RoadmapURL:        f.roadmapURL(career),
			ScoreBreakdown:    scores,
			Confidence:        0.85,
		},
	})
}

func (f *fakeAdvisor) addPoints(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/users/")
	id = strings.TrimSuffix(id, "/add-points")
	u, ok := f.users[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	points, err := strconv.Atoi(r.URL.Query().Get("points"))
	if err != nil {
		http.Error(w, "bad points", http.StatusBadRequest)
		return
	}
	u.Points += points
	f.checkBadge(u)
	writeBody(w, advisor.PointsResult{
		PointsAdded: points + f.pointsSkew,
		TotalPoints: u.Points,
		Level:       u.Level,
		Badges:      u.Badges,
	})
}

func (f *fakeAdvisor) checkBadge(u *fakeUser) {
	if u.Points < 50 {
		return
	}
	for _, b := range u.Badges {
		if b == "Quiz Master" {
			return
		}
	}
	u.Badges = append(u.Badges, "Quiz Master")
}

func (f *fakeAdvisor) roadmaps() []advisor.Roadmap {
	out := make([]advisor.Roadmap, len(f.careers))
	for i, career := range f.careers {
		out[i] = advisor.Roadmap{
			ID:          fmt.Sprintf("roadmap_%d", i+1),
			SkillRole:   career,
			RoadmapURL:  f.roadmapURL(career),
			Description: fmt.Sprintf("Path to becoming a %s", career),
		}
	}
	return out
}

func (f *fakeAdvisor) roadmapURL(career string) string {
	slug := strings.ToLower(strings.ReplaceAll(career, " ", "-"))
	return "https://roadmap.sh/" + slug
}

func (f *fakeAdvisor) getRoadmap(w http.ResponseWriter, r *http.Request) {
	career := strings.TrimPrefix(r.URL.Path, "/roadmaps/")
	for _, rm := range f.roadmaps() {
		if rm.SkillRole == career {
			writeBody(w, rm)
			return
		}
	}
	http.NotFound(w, r)
}

func writeBody(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestSuite(t *testing.T) (*Suite, *fakeAdvisor) {
	t.Helper()
	fake := newFakeAdvisor()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	suite, err := NewSuite(advisor.NewClient(server.URL))
	require.NoError(t, err)
	return suite, fake
}

func TestNewSuite_RegistersAllChecks(t *testing.T) {
	suite, _ := newTestSuite(t)

	assert.Equal(t, len(DefaultOrder()), suite.Registry.Count())
	for _, id := range DefaultOrder() {
		c, err := suite.Registry.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, c.ID())
		assert.NotEmpty(t, c.Name())
	}
}

func TestNewSuite_DependenciesResolvable(t *testing.T) {
	suite, _ := newTestSuite(t)

	require.NoError(t, suite.Registry.ValidateDependencies())

	// Dependency order must be achievable within DefaultOrder:
	// every dependency appears before its dependent.
	position := make(map[check.ID]int, len(DefaultOrder()))
	for i, id := range DefaultOrder() {
		position[id] = i
	}
	for _, id := range DefaultOrder() {
		c, err := suite.Registry.Get(id)
		require.NoError(t, err)
		for _, dep := range c.Dependencies() {
			assert.Less(t, position[dep], position[id],
				"%s must run after %s", id, dep)
		}
	}
}

func TestNewSuite_InvalidContractRejected(t *testing.T) {
	bad := contract.Default()
	bad.Careers = nil

	_, err := NewSuite(
		advisor.NewClient("http://localhost:1"), WithContract(bad),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract")
}

func TestSuite_FullRunAgainstFakeBackend(t *testing.T) {
	suite, _ := newTestSuite(t)

	r := runner.NewRunner(
		runner.WithRegistry(suite.Registry),
		runner.WithTimeout(10*time.Second),
	)
	results, err := r.RunSequence(
		context.Background(), DefaultOrder(), check.NewConfig(""),
	)
	require.NoError(t, err)
	require.Len(t, results, len(DefaultOrder()))

	for _, result := range results {
		assert.Equal(t, check.StatusPassed, result.Status,
			"%s: %s", result.CheckID, result.FailureDetail())
	}

	// The run leaves the session populated for later checks.
	assert.True(t, suite.Session.HasSubject())
	assert.Len(t, suite.Session.Quizzes, 10)
}

func TestSuite_FullRun_HonorsSharedState(t *testing.T) {
	suite, fake := newTestSuite(t)

	r := runner.NewRunner(runner.WithRegistry(suite.Registry))
	_, err := r.RunSequence(
		context.Background(), DefaultOrder(), check.NewConfig(""),
	)
	require.NoError(t, err)

	// One subject plus the badge probe and the two scenario
	// probes were created during the run.
	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Len(t, fake.users, 4)

	subject, ok := fake.users[suite.Session.SubjectID]
	require.True(t, ok)
	assert.Equal(t, suite.Session.SubjectName, subject.Name)
	assert.Contains(t, subject.Badges, "Quiz Master")
}

func TestSuite_BrokenQuizCatalog_FailsDependents(t *testing.T) {
	fake := newFakeAdvisor()
	// Short catalog violates the exact-count contract.
	fake.quizzes = fake.quizzes[:7]
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	suite, err := NewSuite(advisor.NewClient(server.URL))
	require.NoError(t, err)

	r := runner.NewRunner(runner.WithRegistry(suite.Registry))
	results, err := r.RunSequence(
		context.Background(), DefaultOrder(), check.NewConfig(""),
	)
	require.NoError(t, err)
	require.Len(t, results, len(DefaultOrder()))

	byID := make(map[check.ID]*check.Result, len(results))
	for _, result := range results {
		byID[result.CheckID] = result
	}

	assert.Equal(t, check.StatusPassed, byID[IDHealth].Status)
	assert.Equal(t, check.StatusPassed, byID[IDCreateUser].Status)
	assert.Equal(t, check.StatusFailed, byID[IDListQuizzes].Status)

	// Checks downstream of the catalog fail on the unmet
	// dependency without executing.
	assert.Equal(t, check.StatusFailed, byID[IDSubmitQuiz].Status)
	assert.Contains(t, byID[IDSubmitQuiz].Error, "unmet dependency")
	assert.Equal(t, check.StatusFailed, byID[IDScenarioData].Status)

	// The catalog is never cached from a failing check.
	assert.False(t, suite.Session.HasCatalog())

	// Roadmap checks do not depend on the quiz catalog and
	// still pass.
	assert.Equal(t, check.StatusPassed, byID[IDListRoadmaps].Status)
	assert.Equal(t, check.StatusPassed, byID[IDRoadmapLookup].Status)
}

func TestSuite_UnreachableBackend_AllChecksFail(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	suite, err := NewSuite(advisor.NewClient(url))
	require.NoError(t, err)

	r := runner.NewRunner(runner.WithRegistry(suite.Registry))
	results, err := r.RunSequence(
		context.Background(), DefaultOrder(), check.NewConfig(""),
	)
	require.NoError(t, err)
	require.Len(t, results, len(DefaultOrder()))

	for _, result := range results {
		assert.Equal(t, check.StatusFailed, result.Status,
			"%s", result.CheckID)
	}
}

func TestHealthCheck_EmptyBodyPasses(t *testing.T) {
	// The status message is optional: a bare 200 with no body
	// is a healthy backend.
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	))
	t.Cleanup(server.Close)

	suite, err := NewSuite(advisor.NewClient(server.URL))
	require.NoError(t, err)

	r := runner.NewRunner(runner.WithRegistry(suite.Registry))
	result, err := r.Run(
		context.Background(), IDHealth, check.NewConfig(IDHealth),
	)
	require.NoError(t, err)

	assert.Equal(t, check.StatusPassed, result.Status,
		result.FailureDetail())
	assert.Equal(t, "OK", result.Outputs["message"])
}

func TestBadgeAwardCheck_MisreportedDeltaFails(t *testing.T) {
	fake := newFakeAdvisor()
	fake.pointsSkew = 5
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	suite, err := NewSuite(advisor.NewClient(server.URL))
	require.NoError(t, err)

	r := runner.NewRunner(runner.WithRegistry(suite.Registry))
	result, err := r.Run(
		context.Background(), IDBadgeAward,
		check.NewConfig(IDBadgeAward),
	)
	require.NoError(t, err)

	assert.Equal(t, check.StatusFailed, result.Status)
	assert.Contains(t, result.FailureDetail(), "points_added")
}

func TestUniqueEmail_Distinct(t *testing.T) {
	a := uniqueEmail("probe")
	b := uniqueEmail("probe")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "probe_"))
	assert.True(t, strings.HasSuffix(a, "@example.com"))
}
