// Package ai holds the HTTP clients for the two external generative
// collaborators: the text-generation service used for field rewrites and the
// document scoring/rewrite service.
//
// Both speak a request/response JSON envelope with a success flag; the inner
// response field is opaque free text that callers post-process themselves.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mode selects the scoring collaborator's behavior.
type Mode string

const (
	ModeReview   Mode = "review"
	ModeOptimize Mode = "optimize"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type envelope struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type rewriteRequest struct {
	Instruction string `json:"instruction"`
	Content     string `json:"content"`
	Context     string `json:"context,omitempty"`
}

type scoreRequest struct {
	Mode        Mode   `json:"mode"`
	Instruction string `json:"instruction"`
	Document    string `json:"document"`
}

// Rewrite asks the text-generation collaborator to rewrite one field. The
// returned string is the raw response text; the orchestrator strips quotes
// and whitespace itself. Failures are not retried here: the caller surfaces
// them and the user decides whether to try again.
func (c *Client) Rewrite(ctx context.Context, instruction, content, extra string) (string, error) {
	body, err := json.Marshal(rewriteRequest{Instruction: instruction, Content: content, Context: extra})
	if err != nil {
		return "", err
	}
	return c.post(ctx, "/v1/rewrite", body)
}

// ScoreDocument sends extracted document text to the scoring collaborator
// with the given mode flag and instruction, returning the raw response text.
func (c *Client) ScoreDocument(ctx context.Context, mode Mode, instruction, document string) (string, error) {
	body, err := json.Marshal(scoreRequest{Mode: mode, Instruction: instruction, Document: document})
	if err != nil {
		return "", err
	}
	return c.post(ctx, "/v1/score", body)
}

func (c *Client) post(ctx context.Context, path string, body []byte) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("collaborator api key is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("collaborator returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(respBytes, &env); err != nil {
		return "", fmt.Errorf("collaborator returned malformed envelope: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return "", fmt.Errorf("collaborator reported failure: %s", env.Error)
		}
		return "", errors.New("collaborator reported failure")
	}
	return env.Response, nil
}
