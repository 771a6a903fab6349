// Package mcptools exposes the folder and task operations as MCP tools,
// so local MCP clients can drive the task list without the hosted agent
// platform.
package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/voicelog/backend/internal/todo"
)

// CreateFolderTool handles the create_folder MCP tool.
type CreateFolderTool struct {
	svc *todo.Service
}

// NewCreateFolderTool creates a CreateFolderTool.
func NewCreateFolderTool(svc *todo.Service) *CreateFolderTool {
	return &CreateFolderTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateFolderTool) Definition() mcp.Tool {
	return mcp.NewTool("create_folder",
		mcp.WithDescription("Create a new folder to organize tasks."),
		mcp.WithString("folder_name",
			mcp.Required(),
			mcp.Description("Name of the folder to create"),
		),
		mcp.WithString("emoji",
			mcp.Description("Optional emoji icon for the folder"),
		),
	)
}

// Handle processes the create_folder tool call.
func (t *CreateFolderTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("folder_name", "")
	if name == "" {
		return mcp.NewToolResultError("'folder_name' is required"), nil
	}
	out, err := t.svc.CreateFolder(ctx, name, req.GetString("emoji", ""))
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}

// DeleteFolderTool handles the delete_folder MCP tool.
type DeleteFolderTool struct {
	svc *todo.Service
}

// NewDeleteFolderTool creates a DeleteFolderTool.
func NewDeleteFolderTool(svc *todo.Service) *DeleteFolderTool {
	return &DeleteFolderTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteFolderTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_folder",
		mcp.WithDescription("Delete a folder and all tasks inside it."),
		mcp.WithString("folder_name",
			mcp.Required(),
			mcp.Description("Name of the folder to delete"),
		),
	)
}

// Handle processes the delete_folder tool call.
func (t *DeleteFolderTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("folder_name", "")
	if name == "" {
		return mcp.NewToolResultError("'folder_name' is required"), nil
	}
	out, err := t.svc.DeleteFolder(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("delete folder: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}

// EditFolderNameTool handles the edit_folder_name MCP tool.
type EditFolderNameTool struct {
	svc *todo.Service
}

// NewEditFolderNameTool creates an EditFolderNameTool.
func NewEditFolderNameTool(svc *todo.Service) *EditFolderNameTool {
	return &EditFolderNameTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *EditFolderNameTool) Definition() mcp.Tool {
	return mcp.NewTool("edit_folder_name",
		mcp.WithDescription("Rename a folder and optionally change its emoji."),
		mcp.WithString("old_name",
			mcp.Required(),
			mcp.Description("Current name of the folder"),
		),
		mcp.WithString("new_name",
			mcp.Required(),
			mcp.Description("New name for the folder"),
		),
		mcp.WithString("new_emoji",
			mcp.Description("Optional new emoji for the folder"),
		),
	)
}

// Handle processes the edit_folder_name tool call.
func (t *EditFolderNameTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldName := req.GetString("old_name", "")
	newName := req.GetString("new_name", "")
	if oldName == "" || newName == "" {
		return mcp.NewToolResultError("'old_name' and 'new_name' are required"), nil
	}
	out, err := t.svc.RenameFolder(ctx, oldName, newName, req.GetString("new_emoji", ""))
	if err != nil {
		return nil, fmt.Errorf("rename folder: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}
