package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/writeup"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
)

// DefaultChallengeBaseURL is the origin of the 玄机 challenge API.
const DefaultChallengeBaseURL = "https://xj.edisec.net"

// Ensure ChallengeClient implements writeup.ChallengeService at compile time.
var _ writeup.ChallengeService = (*ChallengeClient)(nil)

// ChallengeClient fetches challenges from the 玄机 API. Requests are
// retried with backoff and guarded by a circuit breaker so a failing API
// does not stall every note generation.
//
// ChallengeClient is safe for concurrent use.
type ChallengeClient struct {
	baseURL      string
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	client  *retryablehttp.Client
	breaker *gobreaker.CircuitBreaker
}

// ChallengeOption configures a ChallengeClient.
type ChallengeOption func(*ChallengeClient)

// WithBaseURL overrides DefaultChallengeBaseURL.
func WithBaseURL(u string) ChallengeOption {
	return func(c *ChallengeClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRequestTimeout bounds one FindChallengeByID call, retries and
// backoff included. Defaults to DefaultFetchTimeout.
func WithRequestTimeout(d time.Duration) ChallengeOption {
	return func(c *ChallengeClient) {
		c.timeout = d
	}
}

// WithRetry sets the number of retries and the backoff bounds.
func WithRetry(max int, waitMin, waitMax time.Duration) ChallengeOption {
	return func(c *ChallengeClient) {
		c.retryMax = max
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// NewChallengeClient returns a client for the challenge API.
func NewChallengeClient(opts ...ChallengeOption) *ChallengeClient {
	c := &ChallengeClient{
		baseURL:      DefaultChallengeBaseURL,
		timeout:      DefaultFetchTimeout,
		retryMax:     3,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = retryablehttp.NewClient()
	c.client.RetryMax = c.retryMax
	c.client.RetryWaitMin = c.retryWaitMin
	c.client.RetryWaitMax = c.retryWaitMax
	c.client.HTTPClient.Timeout = c.timeout
	c.client.Logger = nil

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "challenge-api",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		// A missing challenge says nothing about API health.
		IsSuccessful: func(err error) bool {
			return err == nil || writeup.ErrorCode(err) == writeup.ENOTFOUND
		},
	})

	return c
}

// challengeDTO is the challenge payload. The API wraps it in a "data"
// envelope, older deployments return it bare.
type challengeDTO struct {
	Description any       `json:"description"`
	Steps       []stepDTO `json:"steps"`
}

type stepDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type challengeResponse struct {
	Data *challengeDTO `json:"data"`
	challengeDTO
}

// FindChallengeByID implements writeup.ChallengeService. The bearer token
// and cookies, if any, are taken from ctx via writeup.TokenFromContext and
// writeup.CookiesFromContext.
//
// Returns ENOTFOUND for 404 responses and EUNAVAILABLE when the API cannot
// be reached, keeps failing or the circuit is open. When the timeout
// expires the context error is returned.
func (c *ChallengeClient) FindChallengeByID(ctx context.Context, id string) (*writeup.Challenge, error) {
	if id == "" {
		return nil, writeup.Errorf(writeup.EINVALID, "challenge id required")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	v, err := c.breaker.Execute(func() (interface{}, error) {
		return c.findChallenge(ctx, id)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, writeup.Errorf(writeup.EUNAVAILABLE, "challenge api: %v", err)
	} else if err != nil {
		return nil, err
	}
	return v.(*writeup.Challenge), nil
}

func (c *ChallengeClient) findChallenge(ctx context.Context, id string) (*writeup.Challenge, error) {
	url := fmt.Sprintf("%s/v1/challenges/%s", c.baseURL, id)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, writeup.Errorf(writeup.EINVALID, "invalid challenge url %q: %v", url, err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("x-target", "API")
	req.Header.Set("User-Agent", DefaultUserAgent)
	if token := writeup.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, cookie := range writeup.CookiesFromContext(ctx) {
		req.AddCookie(cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, writeup.Errorf(writeup.EUNAVAILABLE, "challenge api: %v", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, writeup.Errorf(writeup.EUNAVAILABLE, "reading challenge %s: %v", id, err)
	}

	var out challengeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, writeup.Errorf(writeup.EINVALID, "decoding challenge %s: %v", id, err)
	}
	dto := &out.challengeDTO
	if out.Data != nil {
		dto = out.Data
	}

	ch := &writeup.Challenge{ID: id}
	if s, ok := dto.Description.(string); ok {
		ch.Description = s
	}
	for _, s := range dto.Steps {
		ch.Steps = append(ch.Steps, writeup.ChallengeStep{Name: s.Name, Description: s.Description})
	}
	return ch, nil
}
