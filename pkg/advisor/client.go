package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.careerquest/pkg/logging"
)

// Required response fields per endpoint. A success response
// missing any of these is a contract violation.
var (
	userFields = []string{
		"id", "name", "email", "points", "level",
		"badges", "created_at",
	}
	quizFields = []string{
		"id", "question", "option_a", "option_b",
		"option_c", "option_d", "correct_option", "category",
	}
	submissionFields = []string{
		"points_earned", "total_points", "level",
		"badges", "category_scores", "recommendation",
	}
	recommendationFields = []string{
		"recommended_career", "roadmap_url",
		"score_breakdown", "confidence",
	}
	pointsFields = []string{
		"points_added", "total_points", "level", "badges",
	}
	roadmapFields = []string{
		"id", "skill_role", "roadmap_url", "description",
	}
)

// ClientOption configures a Client via functional options.
type ClientOption func(*Client)

// Client calls the advisor backend. All wrappers perform exactly
// one attempt; there are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a client targeting the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.NewNullLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for API request/response logs.
func WithLogger(l logging.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Health calls GET / and expects status 200. The message field
// is optional.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	data, err := c.call(ctx, "health", http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	var h Health
	// Body shape is unspecified beyond the optional message.
	_ = json.Unmarshal(data, &h)
	return &h, nil
}

// SeedData calls POST /init-data to populate the quiz and
// roadmap catalogs. Seeding is idempotent on the backend side.
func (c *Client) SeedData(ctx context.Context) (*SeedResult, error) {
	const op = "seed-data"
	data, err := c.call(ctx, op, http.MethodPost, "/init-data", nil)
	if err != nil {
		return nil, err
	}
	var s SeedResult
	if err := decodeObject(op, data, []string{"message"}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateUser calls POST /users with the given name and email.
func (c *Client) CreateUser(
	ctx context.Context, name, email string,
) (*User, error) {
	const op = "create-user"
	body, _ := json.Marshal(map[string]string{
		"name":  name,
		"email": email,
	})
	data, err := c.call(ctx, op, http.MethodPost, "/users", body)
	if err != nil {
		return nil, err
	}
	var u User
	if err := decodeObject(op, data, userFields, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser calls GET /users/{id}.
func (c *Client) GetUser(
	ctx context.Context, id string,
) (*User, error) {
	const op = "get-user"
	path := "/users/" + url.PathEscape(id)
	data, err := c.call(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := decodeObject(op, data, userFields, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListQuizzes calls GET /quizzes and returns the quiz catalog in
// backend order.
func (c *Client) ListQuizzes(
	ctx context.Context,
) ([]QuizQuestion, error) {
	const op = "list-quizzes"
	data, err := c.call(ctx, op, http.MethodGet, "/quizzes", nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeArray(op, data, quizFields)
	if err != nil {
		return nil, err
	}
	quizzes := make([]QuizQuestion, len(items))
	for i, raw := range items {
		if err := json.Unmarshal(raw, &quizzes[i]); err != nil {
			return nil, contractErr(op, fmt.Errorf(
				"entry %d: %w", i, err,
			))
		}
	}
	return quizzes, nil
}

// SubmitQuiz calls POST /submit-quiz with a full answer set and
// returns the scored result including the career recommendation.
func (c *Client) SubmitQuiz(
	ctx context.Context, sub QuizSubmission,
) (*SubmissionResult, error) {
	const op = "submit-quiz"
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, contractErr(op, fmt.Errorf(
			"encode submission: %w", err,
		))
	}
	data, err := c.call(ctx, op, http.MethodPost, "/submit-quiz", body)
	if err != nil {
		return nil, err
	}

	var result SubmissionResult
	if err := decodeObject(op, data, submissionFields, &result); err != nil {
		return nil, err
	}

	// The recommendation is a nested object with its own
	// required fields.
	var envelope struct {
		Recommendation map[string]json.RawMessage `json:"recommendation"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, contractErr(op, fmt.Errorf(
			"recommendation is not an object: %w", err,
		))
	}
	var missing []string
	for _, f := range recommendationFields {
		if _, ok := envelope.Recommendation[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, contractErr(op, fmt.Errorf(
			"recommendation missing fields: %s",
			strings.Join(missing, ", "),
		))
	}

	return &result, nil
}

// AddPoints calls POST /users/{id}/add-points?points=N.
func (c *Client) AddPoints(
	ctx context.Context, userID string, points int,
) (*PointsResult, error) {
	const op = "add-points"
	path := fmt.Sprintf(
		"/users/%s/add-points?points=%d",
		url.PathEscape(userID), points,
	)
	data, err := c.call(ctx, op, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}
	var p PointsResult
	if err := decodeObject(op, data, pointsFields, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRoadmaps calls GET /roadmaps and returns the full roadmap
// catalog.
func (c *Client) ListRoadmaps(
	ctx context.Context,
) ([]Roadmap, error) {
	const op = "list-roadmaps"
	data, err := c.call(ctx, op, http.MethodGet, "/roadmaps", nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeArray(op, data, roadmapFields)
	if err != nil {
		return nil, err
	}
	roadmaps := make([]Roadmap, len(items))
	for i, raw := range items {
		if err := json.Unmarshal(raw, &roadmaps[i]); err != nil {
			return nil, contractErr(op, fmt.Errorf(
				"entry %d: %w", i, err,
			))
		}
	}
	return roadmaps, nil
}

// GetRoadmap calls GET /roadmaps/{career}.
func (c *Client) GetRoadmap(
	ctx context.Context, career string,
) (*Roadmap, error) {
	const op = "get-roadmap"
	path := "/roadmaps/" + url.PathEscape(career)
	data, err := c.call(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var r Roadmap
	if err := decodeObject(op, data, roadmapFields, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// call performs one HTTP request and returns the body on a 200
// response. Any other outcome is classified as a transport or
// protocol error.
func (c *Client) call(
	ctx context.Context,
	op, method, path string,
	body []byte,
) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL+path, reader,
	)
	if err != nil {
		return nil, transportErr(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	start := time.Now()
	c.logger.LogAPIRequest(logging.APIRequestLog{
		Timestamp:  start.Format(time.RFC3339),
		RequestID:  requestID,
		Method:     method,
		URL:        c.baseURL + path,
		BodyLength: len(body),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(op, fmt.Errorf(
			"read response: %w", err,
		))
	}

	c.logger.LogAPIResponse(logging.APIResponseLog{
		Timestamp:      time.Now().Format(time.RFC3339),
		RequestID:      requestID,
		StatusCode:     resp.StatusCode,
		BodyPreview:    truncate(string(data), 512),
		BodyLength:     len(data),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	})

	if resp.StatusCode != http.StatusOK {
		return nil, protocolErr(op, resp.StatusCode, data)
	}
	return data, nil
}

// decodeObject verifies that data is a JSON object containing
// every required field, then unmarshals it into v.
func decodeObject(
	op string,
	data []byte,
	required []string,
	v any,
) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return contractErr(op, fmt.Errorf(
			"response is not a JSON object: %w", err,
		))
	}
	var missing []string
	for _, f := range required {
		if _, ok := raw[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return contractErr(op, fmt.Errorf(
			"missing fields: %s", strings.Join(missing, ", "),
		))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return contractErr(op, fmt.Errorf(
			"decode response: %w", err,
		))
	}
	return nil
}

// decodeArray verifies that data is a JSON array whose every
// element is an object containing the required fields, and
// returns the raw elements.
func decodeArray(
	op string,
	data []byte,
	required []string,
) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, contractErr(op, fmt.Errorf(
			"response is not a JSON array: %w", err,
		))
	}
	for i, item := range items {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, contractErr(op, fmt.Errorf(
				"entry %d is not a JSON object: %w", i, err,
			))
		}
		var missing []string
		for _, f := range required {
			if _, ok := raw[f]; !ok {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return nil, contractErr(op, fmt.Errorf(
				"entry %d missing fields: %s",
				i, strings.Join(missing, ", "),
			))
		}
	}
	return items, nil
}
