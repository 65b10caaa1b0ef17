package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
)

// ErrTransport marks failures where no usable response came back from the service.
var ErrTransport = errors.New("contact service unreachable")

const maxResponseBytes = 64 << 10

// Message is the contact form payload.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Result is the service verdict for a submission.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Config configures the HTTP client.
type Config struct {
	Endpoint       string
	Timeout        time.Duration
	MaxAttempts    uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	HTTPClient     *http.Client
}

// Client posts contact messages to the submission service.
type Client struct {
	endpoint       string
	timeout        time.Duration
	maxAttempts    uint
	initialBackoff time.Duration
	maxBackoff     time.Duration
	http           *http.Client
	logger         zerolog.Logger
}

// New constructs a client. The endpoint is the full URL of POST /api/contact.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("contact endpoint is required")
	}

	client := &Client{
		endpoint:       endpoint,
		timeout:        cfg.Timeout,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		http:           cfg.HTTPClient,
		logger:         logger.With().Str("component", "contact_client").Logger(),
	}
	if client.timeout <= 0 {
		client.timeout = 10 * time.Second
	}
	if client.maxAttempts == 0 {
		client.maxAttempts = 3
	}
	if client.initialBackoff <= 0 {
		client.initialBackoff = 500 * time.Millisecond
	}
	if client.maxBackoff <= 0 {
		client.maxBackoff = 5 * time.Second
	}
	if client.http == nil {
		client.http = &http.Client{}
	}

	return client, nil
}

// Send submits msg. Transport failures are retried with exponential backoff;
// any decoded service verdict, successful or not, is returned as is.
func (c *Client) Send(ctx context.Context, msg Message) (Result, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return Result{}, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialBackoff
	policy.MaxInterval = c.maxBackoff

	attempt := 0
	operation := func() (Result, error) {
		attempt++
		result, err := c.post(ctx, payload)
		if err != nil {
			c.logger.Debug().Err(err).Int("attempt", attempt).Msg("contact submission attempt failed")
		}
		return result, err
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxAttempts),
	)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, payload []byte) (Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, err
	}

	var decoded struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.Success == nil {
		return Result{}, fmt.Errorf("unexpected response from contact service (status %d)", resp.StatusCode)
	}

	return Result{Success: *decoded.Success, Message: decoded.Message}, nil
}
