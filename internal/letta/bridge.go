package letta

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// persona is the fixed prompt every newly created agent starts with.
const persona = `You are VoiceLog AI, a helpful task management assistant.
You help users organize their tasks into folders and manage them efficiently.
You can create folders, add tasks, move tasks between folders, edit tasks and folders,
and help users stay organized. Always be friendly and concise in your responses.`

// Bridge owns the agent identity: it registers the operation tools,
// creates or loads one agent, persists its id to a local state file, and
// relays free-text commands. All agent-id access goes through the mutex,
// so concurrent first requests cannot race into duplicate agents.
type Bridge struct {
	client     *Client
	statePath  string
	backendURL string
	model      string

	mu      sync.Mutex
	agentID string
	toolIDs []string
}

// NewBridge creates a bridge. statePath is the file holding the agent
// id; backendURL is the public URL the registered tools call back to.
func NewBridge(client *Client, statePath, backendURL, model string) *Bridge {
	return &Bridge{
		client:     client,
		statePath:  statePath,
		backendURL: backendURL,
		model:      model,
	}
}

// AgentID returns the current agent id, or "" if none exists yet.
func (b *Bridge) AgentID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.agentID
}

// RegisterTools upserts every tool descriptor with the platform.
// Registration is best-effort: a failure is logged and does not abort
// the others. The collected ids are kept for agent creation/attachment.
func (b *Bridge) RegisterTools(ctx context.Context) []string {
	log.Printf("Registering %d tools with the agent platform", len(Tools()))

	var ids []string
	for _, tool := range Tools() {
		id, err := b.client.UpsertTool(ctx, tool, b.backendURL)
		if err != nil {
			log.Printf("Error registering tool %s: %v", tool.Name, err)
			continue
		}
		log.Printf("Registered tool: %s (%s)", tool.Name, id)
		ids = append(ids, id)
	}

	b.mu.Lock()
	b.toolIDs = ids
	b.mu.Unlock()
	return ids
}

// EnsureAgent returns the agent id, creating or loading the agent on
// first call. The whole sequence runs under the lock: concurrent callers
// block rather than creating duplicates.
func (b *Bridge) EnsureAgent(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.agentID != "" {
		return b.agentID, nil
	}

	// Reuse a persisted agent if the state file is present, re-attaching
	// the (possibly freshly re-registered) tool set to it.
	if data, err := os.ReadFile(b.statePath); err == nil {
		id := strings.TrimSpace(string(data))
		if id != "" {
			log.Printf("Using existing agent: %s", id)
			for _, toolID := range b.toolIDs {
				if err := b.client.AttachTool(ctx, id, toolID); err != nil {
					log.Printf("Error attaching tool %s to agent %s: %v", toolID, id, err)
				}
			}
			b.agentID = id
			return id, nil
		}
	}

	id, err := b.client.CreateAgent(ctx, b.model, persona, b.toolIDs)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}
	if err := os.WriteFile(b.statePath, []byte(id), 0o600); err != nil {
		return "", fmt.Errorf("persist agent id: %w", err)
	}
	log.Printf("Created new agent: %s", id)
	b.agentID = id
	return id, nil
}

// ProcessCommand relays free text to the agent and concatenates every
// non-empty content fragment of its reply into one trimmed string.
func (b *Bridge) ProcessCommand(ctx context.Context, text string) (string, error) {
	agentID, err := b.EnsureAgent(ctx)
	if err != nil {
		return "", err
	}

	messages, err := b.client.SendMessage(ctx, agentID, text)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	var sb strings.Builder
	for _, m := range messages {
		if m.Content == "" {
			continue
		}
		sb.WriteString(m.Content)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String()), nil
}

// Reset deletes the current agent from the platform (best-effort) and
// removes the local state file, so the next EnsureAgent starts fresh.
func (b *Bridge) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.statePath)
	if os.IsNotExist(err) {
		log.Printf("No existing agent found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read agent state: %w", err)
	}

	id := strings.TrimSpace(string(data))
	if id != "" {
		log.Printf("Deleting old agent: %s", id)
		if err := b.client.DeleteAgent(ctx, id); err != nil {
			log.Printf("Could not delete agent (may not exist): %v", err)
		}
	}
	if err := os.Remove(b.statePath); err != nil {
		return fmt.Errorf("remove agent state: %w", err)
	}
	b.agentID = ""
	return nil
}
