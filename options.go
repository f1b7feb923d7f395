package aurora

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// WithBaseURL sets the base URL every endpoint is joined onto.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithMaxConcurrentRequests caps the number of in-flight requests.
// Zero or a negative limit means unbounded.
func WithMaxConcurrentRequests(limit int) Option {
	return func(c *Client) {
		c.gate.setLimit(limit)
	}
}

// WithTransport sets a custom transport implementation.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithHTTPClient routes dispatch through the given net/http client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.transport = NewHTTPTransport(client)
	}
}

// WithAbortController replaces the client's default abort controller.
func WithAbortController(controller *AbortController) Option {
	return func(c *Client) {
		if controller != nil {
			c.controller = controller
		}
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.defaults.setTimeout(timeout)
	}
}

// WithHeaders seeds the default headers.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		c.defaults.addHeaders(h)
	}
}

// WithParams seeds the default query params.
func WithParams(p map[string]any) Option {
	return func(c *Client) {
		c.defaults.addParams(p)
	}
}

// WithRateLimiter throttles admission to r requests per second with the
// given burst capacity. Denied calls fail with ErrRateLimited before
// touching the concurrency gate.
func WithRateLimiter(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// WithMiddleware adds middleware to the dispatch chain.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithMetrics enables Prometheus metrics collection.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger.
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns
// an error if invalid.
func (c *Client) ValidateConfiguration() error {
	var problems []string

	problems = append(problems, c.validateTransportConfig()...)
	problems = append(problems, c.validateLimiterConfig()...)
	problems = append(problems, c.validateDebugConfig()...)
	problems = append(problems, c.validateMiddlewareConfig()...)

	if len(problems) > 0 {
		return &InstanceError{
			Op:      "validate",
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", problems),
		}
	}

	return nil
}

func (c *Client) validateTransportConfig() []string {
	var problems []string

	if c.transport == nil {
		problems = append(problems, "transport cannot be nil")
	}
	if c.baseURL != "" && strings.TrimRight(c.baseURL, "/") == "" {
		problems = append(problems, "baseURL must not consist solely of slashes")
	}

	return problems
}

func (c *Client) validateLimiterConfig() []string {
	var problems []string

	if c.limiter != nil {
		if c.limiter.Limit() <= 0 {
			problems = append(problems, "rate limiter rate must be positive")
		}
		if c.limiter.Burst() <= 0 {
			problems = append(problems, "rate limiter burst must be positive")
		}
	}

	return problems
}

func (c *Client) validateDebugConfig() []string {
	var problems []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			problems = append(problems, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			problems = append(problems, "logger must be set when debug is enabled")
		}
	}

	return problems
}

func (c *Client) validateMiddlewareConfig() []string {
	var problems []string

	for i, middleware := range c.middleware {
		if middleware == nil {
			problems = append(problems, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}

	return problems
}
