package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/errors"
	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
	"github.com/Faizan-Faisal/umt-hackathon/internal/telemetry"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("campusconnect/authclient")

// Client consumes the job-board REST API. Auth failures are reported as a
// single AUTH error type; callers cannot tell a rejected credential from a
// network fault, and the password-reset acknowledgment is identical whether
// or not the email exists.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type userPayload struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (r authResponse) session() *models.Session {
	return &models.Session{
		Identity:    r.User.ID,
		DisplayName: r.User.Name,
		Email:       r.User.Email,
		Role:        r.User.Role,
		AuthToken:   r.Token,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.postJSON(ctx, "/auth/login", body, "", &resp); err != nil {
		span.RecordError(err)
		return nil, errors.Auth("login failed", err)
	}
	return resp.session(), nil
}

func (c *Client) Register(ctx context.Context, profile models.Profile) (*models.Session, error) {
	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	var resp authResponse
	if err := c.postJSON(ctx, "/auth/register", profile, "", &resp); err != nil {
		span.RecordError(err)
		return nil, errors.Auth("registration failed", err)
	}
	return resp.session(), nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, span := tracer.Start(ctx, "RequestPasswordReset")
	defer span.End()

	body := map[string]string{"email": email}
	if err := c.postJSON(ctx, "/auth/password-reset-request", body, "", nil); err != nil {
		span.RecordError(err)
		return errors.Auth("password reset request failed", err)
	}
	return nil
}

func (c *Client) MyJobs(ctx context.Context, token string) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "MyJobs")
	defer span.End()

	url := c.baseURL + "/jobs/my-jobs"
	span.SetAttributes(telemetry.String("http.url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("creating request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("failed to fetch job postings", zap.Error(err))
		return nil, errors.Unavailable("fetching job postings", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailable(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var jobs []models.JobPosting
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		span.RecordError(err)
		return nil, errors.Internal("decoding job postings", err)
	}
	return jobs, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}, token string, out interface{}) error {
	url := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("url", url),
			zap.Error(err))
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
