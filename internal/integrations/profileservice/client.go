package profileservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client for ProfileService.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a ProfileService client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfile fetches the membership profile of a user.
func (c *Client) GetProfile(ctx context.Context, userID int64) (*MemberProfile, error) {
	url := fmt.Sprintf("%s/internal/profiles/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile MemberProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// ReportInterviewResult sends the outcome of a completed member interview to
// ProfileService so the membership state machine can advance.
func (c *Client) ReportInterviewResult(ctx context.Context, result InterviewResult) error {
	url := fmt.Sprintf("%s/internal/profiles/%d/interview-result", c.baseURL, result.UserID)

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %w", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrProfileNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// ReportInterviewResultWithGracefulDegradation reports the interview outcome
// but downgrades transport failures to ErrServiceDegraded. A completed
// booking must not be rolled back because ProfileService is down; the caller
// records the degradation and moves on.
func (c *Client) ReportInterviewResultWithGracefulDegradation(ctx context.Context, result InterviewResult) error {
	c.log.Info("Reporting interview result for user_id=%d booking_id=%d outcome=%s",
		result.UserID, result.BookingID, result.Outcome)

	err := c.ReportInterviewResult(ctx, result)
	if err != nil {
		if err == ErrProfileNotFound {
			c.log.Warn("No profile found for user_id=%d, interview result dropped", result.UserID)
			return err
		}

		c.log.Error("ProfileService unavailable, applying graceful degradation for user_id=%d: %v",
			result.UserID, err)
		return fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, result.UserID, err)
	}

	c.log.Info("Interview result delivered for user_id=%d", result.UserID)
	return nil
}
