// Package aiprovider is the HTTP streaming client for AI providers
// (spec.md §6 External Interfaces). It speaks the OpenAI-compatible
// chat-completions contract: POST a JSON body, read back Server-Sent
// Events, and append each delta to the assistant message until a literal
// "data: [DONE]" line closes the stream.
package aiprovider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// ProviderConfigError indicates the client was misconfigured (missing base
// URL, model, or key) before any request was attempted.
type ProviderConfigError struct{ Reason string }

func (e *ProviderConfigError) Error() string { return "aiprovider: config error: " + e.Reason }

// ProviderAuthError indicates the provider rejected the request's
// credentials (HTTP 401/403).
type ProviderAuthError struct{ StatusCode int }

func (e *ProviderAuthError) Error() string {
	return fmt.Sprintf("aiprovider: authentication failed (status %d)", e.StatusCode)
}

// ProviderHTTPError wraps any other non-200 response (spec.md §7).
type ProviderHTTPError struct {
	StatusCode int
	Body       string
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("aiprovider: request failed (status %d): %s", e.StatusCode, e.Body)
}

// Message is one chat turn in the request body.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config holds the per-request parameters spec.md §6's wire contract
// names.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int // 0 means omit
	TopP        float64
	HTTPClient  *http.Client
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	Stream      bool      `json:"stream"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Client streams chat completions from an OpenAI-compatible provider.
type Client struct {
	cfg Config
}

// New validates cfg and returns a ready-to-use Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, &ProviderConfigError{Reason: "base URL is empty"}
	}
	if cfg.Model == "" {
		return nil, &ProviderConfigError{Reason: "model is empty"}
	}
	if cfg.APIKey == "" {
		return nil, &ProviderConfigError{Reason: "API key is empty"}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Client{cfg: cfg}, nil
}

// OnToken is invoked once per accumulated content delta as it streams in.
type OnToken func(content string)

// StreamChat POSTs the chat-completions request and streams the response,
// invoking onToken for each delta until the provider sends "data: [DONE]"
// or ctx is cancelled. Partial content accumulated before cancellation is
// returned alongside the error so callers can preserve it with a
// "cancelled" marker (spec.md §5 Cancellation).
func (c *Client) StreamChat(ctx context.Context, messages []Message, onToken OnToken) (string, error) {
	body := chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		Stream:      true,
	}
	if c.cfg.MaxTokens > 0 {
		body.MaxTokens = &c.cfg.MaxTokens
	}
	if c.cfg.TopP > 0 {
		body.TopP = &c.cfg.TopP
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderConfigError{Reason: "failed to encode request: " + err.Error()}
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", wrapNetError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", wrapNetError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &ProviderAuthError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		return "", &ProviderHTTPError{StatusCode: resp.StatusCode, Body: buf.String()}
	}

	return readSSE(resp.Body, onToken)
}

// readSSE scans "data:" lines, accumulating delta content until a literal
// "data: [DONE]" line or EOF (spec.md §6).
func readSSE(body io.Reader, onToken OnToken) (string, error) {
	var assembled strings.Builder
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return assembled.String(), nil
		}
		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue // tolerate non-JSON keepalive/comment lines
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		assembled.WriteString(delta)
		if onToken != nil {
			onToken(delta)
		}
	}
	if err := scanner.Err(); err != nil {
		return assembled.String(), wrapNetError(err)
	}
	return assembled.String(), nil
}

// wrapNetError classifies low-level transport errors into an actionable
// message, matching the teacher-pack exemplar's retry/backoff classifier
// adapted to a one-shot streaming call (see SPEC_FULL.md §5).
func wrapNetError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("aiprovider: request timed out: %w", err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("aiprovider: DNS lookup failed for %s: %w", dnsErr.Name, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("aiprovider: connection refused: %w", err)
	}
	return fmt.Errorf("aiprovider: request failed: %w", err)
}
