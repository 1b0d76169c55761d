// Package gateway reaches one external collaborator agent over its JSON-RPC
// request/response channel. Every failure mode (transport fault, bad status,
// undecodable body, timeout) degrades to the absence marker; a collaborator
// can never fail the coordinator.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

const (
	rpcMethod            = "message/send"
	maxResponseSizeBytes = 2 << 20
)

type Config struct {
	URL     string        `split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// Client makes exactly one attempt per Call; retries are caller policy.
type Client struct {
	name       string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(name string, cfg Config) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("collaborator name is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("collaborator url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid collaborator url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		name:    name,
		baseURL: baseURL,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNew(name string, cfg Config) *Client {
	client, err := NewClient(name, cfg)
	if err != nil {
		panic(err)
	}
	return client
}

var _ contractx.Collaborator = (*Client)(nil)

func (c *Client) Name() string {
	return c.name
}

type rpcPart struct {
	Kind string         `json:"kind"`
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

type rpcMessage struct {
	Parts []rpcPart `json:"parts"`
	Role  string    `json:"role"`
}

type rpcParams struct {
	Message rpcMessage `json:"message"`
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error,omitempty"`
}

// Call sends the payload and waits at most the configured timeout for the
// collaborator's answer.
func (c *Client) Call(ctx context.Context, req contractx.CollaboratorRequest) contractx.CollaboratorResult {
	parts := []rpcPart{{Kind: "text", Text: req.Text}}
	if len(req.Context) > 0 {
		parts = append(parts, rpcPart{Kind: "data", Data: req.Context})
	}

	rpcID := fmt.Sprintf("%s_query_%s", c.name, uuid.NewString())
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  rpcMethod,
		Params: rpcParams{
			Message: rpcMessage{Parts: parts, Role: "user"},
		},
		ID: rpcID,
	})
	if err != nil {
		return c.absent(rpcID, fmt.Sprintf("marshal request: %v", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return c.absent(rpcID, fmt.Sprintf("build request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("collaborator", c.name).
		Str("rpc_id", rpcID).
		Str("url", c.baseURL).
		Msg("collaborator call issued")
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.absent(rpcID, fmt.Sprintf("transport: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return c.absent(rpcID, fmt.Sprintf("read response: %v", err))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.absent(rpcID, fmt.Sprintf("status=%d", resp.StatusCode))
	}

	var parsed rpcResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return c.absent(rpcID, fmt.Sprintf("decode response: %v", err))
	}
	if parsed.Error != nil {
		return c.absent(rpcID, fmt.Sprintf("rpc error code=%d: %s", parsed.Error.Code, parsed.Error.Message))
	}

	content := extractContent(parsed.Result)
	if content == "" {
		return c.absent(rpcID, "empty result content")
	}

	log.Info().
		Str("collaborator", c.name).
		Str("rpc_id", rpcID).
		Dur("elapsed", time.Since(start)).
		Int("content_len", len(content)).
		Msg("collaborator call completed")

	return contractx.CollaboratorResult{
		Collaborator: c.name,
		Content:      content,
	}
}

func (c *Client) absent(rpcID, reason string) contractx.CollaboratorResult {
	log.Warn().
		Str("collaborator", c.name).
		Str("rpc_id", rpcID).
		Str("reason", reason).
		Msg("collaborator call degraded")

	return contractx.CollaboratorResult{
		Collaborator: c.name,
		Absent:       true,
		Reason:       reason,
	}
}

// extractContent pulls usable text from a collaborator result. Collaborators
// answer with result.response holding either a bare string or an object with
// a content field; anything else is passed through as raw JSON.
func extractContent(result json.RawMessage) string {
	if len(result) == 0 {
		return ""
	}

	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(result, &envelope); err == nil && len(envelope.Response) > 0 {
		return flattenResponse(envelope.Response)
	}
	return strings.TrimSpace(string(result))
}

func flattenResponse(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var obj struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && len(obj.Content) > 0 {
		if err := json.Unmarshal(obj.Content, &text); err == nil {
			return strings.TrimSpace(text)
		}
		return strings.TrimSpace(string(obj.Content))
	}

	return strings.TrimSpace(string(raw))
}
