// Package figma extracts design contracts from the design tool's local
// query service. The service is reached over loopback HTTP with a
// single-shot JSON-RPC tools/call request per extraction; there is no
// session state and no retry policy — a failed extraction is reported to
// the caller, who decides whether to retry.
package figma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultBaseURL is the fixed loopback address the design tool's query
// service listens on.
const DefaultBaseURL = "http://127.0.0.1:3845/mcp"

// toolDesignContext is the named tool invoked to read the current design
// state of the selected node.
const toolDesignContext = "get_design_context"

// Client is a client for the local design query service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	nextID     atomic.Int64
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// New creates a Client for the query service at baseURL. An empty
// baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client. On timeout the call
// fails with a ConnectionError.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// call executes one tools/call round trip. Transport failures and
// timeouts become ConnectionError; an error field in the response becomes
// ProtocolError with the service message verbatim.
func (c *Client) call(ctx context.Context, tool string, arguments map[string]any, result any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  "tools/call",
		Params:  rpcParams{Name: tool, Arguments: arguments},
		ID:      c.nextID.Add(1),
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", tool, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", tool, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.InfoContext(ctx, "design service request", "tool", tool, "url", c.baseURL, "id", req.ID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return newConnectionError(c.baseURL, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "design service response", "tool", tool, "status", resp.StatusCode)

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%s: decode response: %w", tool, err)
	}
	if rpcResp.Error != nil {
		return &ProtocolError{message: rpcResp.Error.Message}
	}
	if rpcResp.Result == nil {
		return fmt.Errorf("%s: response carries neither result nor error", tool)
	}
	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("%s: decode result payload: %w", tool, err)
	}
	return nil
}

// GetDesignContext reads the current design state of the node.
func (c *Client) GetDesignContext(ctx context.Context, nodeID string) (*DesignContext, error) {
	var dc DesignContext
	if err := c.call(ctx, toolDesignContext, map[string]any{"nodeId": nodeID}, &dc); err != nil {
		return nil, err
	}
	return &dc, nil
}
