// Package letta talks to the external agent platform: tool registration,
// agent lifecycle, and message relay. The platform is treated as an
// opaque REST oracle; this client covers only the calls the bridge needs.
package letta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the hosted agent platform endpoint.
const DefaultBaseURL = "https://api.letta.com"

// Client is a minimal REST client for the agent platform.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client with bearer-token auth. An empty baseURL
// selects the hosted platform.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Message is one entry of an agent's reply.
type Message struct {
	Type    string `json:"message_type"`
	Content string `json:"content"`
}

// UpsertTool registers (or re-registers) a tool and returns its platform id.
func (c *Client) UpsertTool(ctx context.Context, tool ToolDescriptor, backendURL string) (string, error) {
	body := map[string]any{
		"name":        tool.Name,
		"description": tool.Description,
		"json_schema": tool.JSONSchema(),
		"source_code": tool.SourceCode(backendURL),
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPut, "/v1/tools", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// CreateAgent creates an agent with a persona memory block and the given
// tool set, returning its id.
func (c *Client) CreateAgent(ctx context.Context, agentModel, persona string, toolIDs []string) (string, error) {
	body := map[string]any{
		"model": agentModel,
		"memory_blocks": []map[string]string{
			{"label": "persona", "value": persona},
		},
		"tool_ids": toolIDs,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/agents", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// AttachTool attaches an already-registered tool to an existing agent.
func (c *Client) AttachTool(ctx context.Context, agentID, toolID string) error {
	path := fmt.Sprintf("/v1/agents/%s/tools/attach/%s", agentID, toolID)
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}

// DeleteAgent deletes an agent from the platform.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/agents/"+agentID, nil, nil)
}

// SendMessage sends a user message to the agent and returns its reply
// messages. The agent may call back into this service's endpoints before
// replying; this call blocks until the turn completes.
func (c *Client) SendMessage(ctx context.Context, agentID, text string) ([]Message, error) {
	body := map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": text},
		},
	}
	var resp struct {
		Messages []Message `json:"messages"`
	}
	path := fmt.Sprintf("/v1/agents/%s/messages", agentID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
