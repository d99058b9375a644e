package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1500
	DefaultTimeout     = 30 * time.Second
	DefaultReferer     = "https://github.com/chris/jot"
	DefaultTitle       = "jot"
)

var (
	// ErrNoAPIKey means no credential was configured; no request is made.
	ErrNoAPIKey = errors.New("no API key configured")
	// ErrTransport covers network errors, timeouts and non-2xx statuses.
	ErrTransport = errors.New("completion transport failure")
	// ErrMalformedResponse means the call succeeded but carried no usable content.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// Chatter performs one chat-completion exchange and returns the raw content.
type Chatter interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config describes a completion endpoint.
type Config struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
	Referer     string
	Title       string
	HTTPClient  *http.Client
}

func (c Config) withDefaults() Config {
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Outcome is the result of a single completion attempt. Text is always
// usable: on failure it holds FallbackResponse and Err says why.
type Outcome struct {
	Text string
	Err  error
}

func Success(text string) Outcome {
	return Outcome{Text: text}
}

func Failure(err error) Outcome {
	return Outcome{Text: FallbackResponse, Err: err}
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Client wraps a provider backend with the single-attempt fallback policy.
type Client struct {
	provider string
	model    string
	hasKey   bool
	timeout  time.Duration
	chat     Chatter
	log      *zap.Logger
}

// Configured reports whether completions will be attempted at all.
func (c *Client) Configured() bool {
	return c.hasKey
}

func (c *Client) Provider() string { return c.provider }
func (c *Client) Model() string    { return c.model }

// Complete makes exactly one attempt. It never returns an error; failures
// come back as an Outcome carrying the fallback text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (out Outcome) {
	log := c.log.With(zap.String("provider", c.provider), zap.String("model", c.model))
	if !c.hasKey {
		log.Warn("no API key, using fallback response")
		return Failure(ErrNoAPIKey)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: panic during request: %v", ErrTransport, r)
			log.Error("completion failed, using fallback response", zap.Error(err))
			out = Failure(err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.chat.Chat(ctx, systemPrompt, userPrompt)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("completion failed, using fallback response",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
		)
		return Failure(err)
	}

	log.Info("completion received",
		zap.Int("prompt_tokens_est", EstimateTokens(systemPrompt)+EstimateTokens(userPrompt)),
		zap.Int("response_tokens_est", EstimateTokens(text)),
		zap.Duration("elapsed", elapsed),
	)
	return Success(text)
}
