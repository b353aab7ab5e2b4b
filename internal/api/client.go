package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/retry"
	"github.com/shipdeck/shipdeck-cli/internal/utils"
	"github.com/shipdeck/shipdeck-cli/pkg/version"
)

const (
	DefaultAPIURL  = "https://api.shipdeck.io"
	DefaultTimeout = 2 * time.Minute
)

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	debug          bool
	retryClient    *retry.Client
	circuitBreaker *retry.CircuitBreaker
}

func NewClient(apiKey, baseURL string, debug bool) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:        baseURL,
		apiKey:         apiKey,
		debug:          debug,
		retryClient:    retry.NewClient(retry.DefaultConfig(), debug),
		circuitBreaker: retry.NewCircuitBreaker(5, 30*time.Second),
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("shipdeck-cli/%s", version.GetVersion()))

	if c.debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		logger.Debug("API request",
			"method", method,
			"url", req.URL.String(),
			"authorization", utils.RedactAuthHeader(req.Header.Get("Authorization")),
			"has_body", body != nil,
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.NetworkError{
			Err:       err,
			Operation: fmt.Sprintf("%s %s", method, path),
			URL:       c.baseURL + path,
		}
	}

	if c.debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		logger.Debug("API response", "status", resp.Status)
	}

	return resp, nil
}

// doRequestWithRetry wraps fetches in the retry client and circuit breaker.
// Only idempotent GETs go through here; action POSTs are issued exactly once.
func (c *Client) doRequestWithRetry(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var resp *http.Response

	err := c.retryClient.DoWithRetry(ctx, func() error {
		return c.circuitBreaker.Call(func() error {
			var err error
			resp, err = c.doRequest(ctx, method, path, body)
			if err != nil {
				return err
			}

			if resp.StatusCode >= 500 || resp.StatusCode == 429 || resp.StatusCode == 408 {
				defer func() { _ = resp.Body.Close() }()
				bodyBytes, _ := io.ReadAll(resp.Body)
				return errors.ParseAPIError(resp.StatusCode, bodyBytes)
			}

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// getList fetches path and decodes it through the envelope-normalization seam.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	resp, err := c.doRequestWithRetry(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponseOK(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return DecodeList[T](body)
}

// postAction issues one non-idempotent action POST and decodes the result.
func postAction[T any](ctx context.Context, c *Client, path string, payload interface{}) (*T, error) {
	resp, err := c.doRequest(ctx, "POST", path, payload)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponseOKOrCreated(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return DecodeObject[T](body)
}

// VerifyAuth checks the configured API key against the backend.
func (c *Client) VerifyAuth(ctx context.Context) (*models.UserInfo, error) {
	resp, err := c.doRequest(ctx, "GET", EndpointAuthVerify, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponseOK(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return DecodeObject[models.UserInfo](body)
}
