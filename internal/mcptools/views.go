package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/voicelog/backend/internal/todo"
)

// GetFolderContentsTool handles the get_folder_contents MCP tool.
type GetFolderContentsTool struct {
	svc *todo.Service
}

// NewGetFolderContentsTool creates a GetFolderContentsTool.
func NewGetFolderContentsTool(svc *todo.Service) *GetFolderContentsTool {
	return &GetFolderContentsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *GetFolderContentsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_folder_contents",
		mcp.WithDescription("Get all tasks in a specific folder."),
		mcp.WithString("folder_name",
			mcp.Required(),
			mcp.Description("Name of the folder to view"),
		),
	)
}

// Handle processes the get_folder_contents tool call.
func (t *GetFolderContentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("folder_name", "")
	if name == "" {
		return mcp.NewToolResultError("'folder_name' is required"), nil
	}
	out, err := t.svc.FolderContents(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("folder contents: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}

// ListAllFoldersTool handles the list_all_folders MCP tool.
type ListAllFoldersTool struct {
	svc *todo.Service
}

// NewListAllFoldersTool creates a ListAllFoldersTool.
func NewListAllFoldersTool(svc *todo.Service) *ListAllFoldersTool {
	return &ListAllFoldersTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ListAllFoldersTool) Definition() mcp.Tool {
	return mcp.NewTool("list_all_folders",
		mcp.WithDescription("List all folders and their task counts."),
	)
}

// Handle processes the list_all_folders tool call.
func (t *ListAllFoldersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := t.svc.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}
