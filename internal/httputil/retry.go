// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxAttempts = 5
	defaultWait        = 60 * time.Second
)

// ErrRetriesExhausted is wrapped by the error DoWithRetry returns after the
// last transient failure.
var ErrRetriesExhausted = errors.New("retries exhausted")

// StatusError reports an HTTP status that DoWithRetry treats as transient.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// RetryPolicy bounds the wait-and-resubmit loop. Zero values select the
// defaults: 5 attempts, 60 s apart.
type RetryPolicy struct {
	MaxAttempts int
	Wait        time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Wait <= 0 {
		p.Wait = defaultWait
	}
	return p
}

// IsTransient reports whether an HTTP status is worth retrying unchanged:
// 429 Too Many Requests and every 5xx.
func IsTransient(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// DoWithRetry executes req and resubmits it after a fixed pause when the
// transport fails or the server answers with a transient status. The wait
// does not grow between attempts.
//
// Any other response, successful or not, is returned as-is for the caller to
// inspect. After MaxAttempts transient failures the function returns an
// error wrapping ErrRetriesExhausted and the last failure (a transport error
// or a *StatusError). If ctx is cancelled during a wait the function returns
// ctx.Err(). The request body is replayed through req.GetBody.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy, log *zap.SugaredLogger) (*http.Response, error) {
	policy = policy.withDefaults()
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		r, err := cloneRequest(ctx, req)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(r)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		case IsTransient(resp.StatusCode):
			// Drain and close the body before retrying.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = &StatusError{StatusCode: resp.StatusCode}
		default:
			return resp, nil
		}

		if attempt == policy.MaxAttempts {
			break
		}

		log.Warnw("request failed, waiting before retry",
			"url", req.URL.Redacted(),
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"wait", policy.Wait,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.Wait):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, policy.MaxAttempts, lastErr)
}

// cloneRequest copies req onto ctx with a fresh body.
func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	r := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replaying request body: %w", err)
		}
		r.Body = body
	}
	return r, nil
}
