// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package languagetool submits text batches to a LanguageTool check endpoint
// and decodes the matches it reports.
package languagetool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/proofread/internal/httputil"
	"github.com/pdiddy/proofread/pkg/types"
)

// maxErrorBody bounds how much of an unexpected response is kept for the
// error message.
const maxErrorBody = 512

// TransientError reports that the service stayed unreachable or overloaded
// for every attempt.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("languagetool unavailable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// ResponseError reports a response that will not improve on retry: a client
// error status or a body that is not the expected JSON.
type ResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("languagetool response (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("languagetool returned HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// Client checks text against one LanguageTool endpoint. The zero value is
// not usable; construct with NewClient.
type Client struct {
	http *http.Client
	cfg  types.CheckConfig
	log  *zap.SugaredLogger
}

// NewClient returns a Client for cfg. A nil httpClient gets one with
// cfg.Timeout; a nil log discards output.
func NewClient(httpClient *http.Client, cfg types.CheckConfig, log *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = types.DefaultEndpoint
	}
	if cfg.Language == "" {
		cfg.Language = types.DefaultLanguage
	}
	return &Client{http: httpClient, cfg: cfg, log: log}
}

// Check submits text and returns the matches found in it. Transient
// failures are retried per cfg.Retry and end in a *TransientError; anything
// else the service rejects ends in a *ResponseError.
func (c *Client) Check(ctx context.Context, text string) ([]types.Match, error) {
	form := c.form(text)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	policy := httputil.RetryPolicy{
		MaxAttempts: c.cfg.Retry.MaxAttempts,
		Wait:        c.cfg.Retry.Wait,
	}
	resp, err := httputil.DoWithRetry(ctx, c.http, req, policy, c.log)
	if err != nil {
		if errors.Is(err, httputil.ErrRetriesExhausted) {
			return nil, &TransientError{Attempts: attempts(policy), Err: err}
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var cr checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing response: %w", err)}
	}
	if cr.Matches == nil {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Err: errors.New(`response has no "matches" array`)}
	}
	return cr.Matches, nil
}

// form builds the request parameters for text.
func (c *Client) form(text string) url.Values {
	v := url.Values{
		"text":     {text},
		"language": {c.cfg.Language},
	}
	if len(c.cfg.DisabledRules) > 0 {
		v.Set("disabledRules", strings.Join(c.cfg.DisabledRules, ","))
	}
	if c.cfg.Username != "" && c.cfg.APIKey != "" {
		v.Set("username", c.cfg.Username)
		v.Set("apiKey", c.cfg.APIKey)
	}
	return v
}

func attempts(p httputil.RetryPolicy) int {
	if p.MaxAttempts <= 0 {
		return types.DefaultMaxAttempts
	}
	return p.MaxAttempts
}

// checkResponse is the subset of the /v2/check JSON used here.
type checkResponse struct {
	Matches []types.Match `json:"matches"`
}
