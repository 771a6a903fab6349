package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/voicelog/backend/internal/todo"
)

// CreateTaskTool handles the create_task MCP tool.
type CreateTaskTool struct {
	svc *todo.Service
}

// NewCreateTaskTool creates a CreateTaskTool.
func NewCreateTaskTool(svc *todo.Service) *CreateTaskTool {
	return &CreateTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in a specified folder."),
		mcp.WithString("task_name",
			mcp.Required(),
			mcp.Description("Name of the task"),
		),
		mcp.WithString("folder_name",
			mcp.Required(),
			mcp.Description("Name of the folder to add the task to"),
		),
		mcp.WithString("recurrence",
			mcp.Description("How often the task repeats (once, daily, weekly, etc.)"),
			mcp.DefaultString("once"),
		),
		mcp.WithString("time",
			mcp.Description("Optional scheduled time for the task"),
		),
		mcp.WithString("duration",
			mcp.Description("Optional duration for the task"),
		),
	)
}

// Handle processes the create_task tool call.
func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("task_name", "")
	folder := req.GetString("folder_name", "")
	if name == "" || folder == "" {
		return mcp.NewToolResultError("'task_name' and 'folder_name' are required"), nil
	}
	out, err := t.svc.CreateTask(ctx, name, folder,
		req.GetString("recurrence", "once"),
		req.GetString("time", ""),
		req.GetString("duration", ""),
	)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}

// MoveTaskTool handles the move_task MCP tool.
type MoveTaskTool struct {
	svc *todo.Service
}

// NewMoveTaskTool creates a MoveTaskTool.
func NewMoveTaskTool(svc *todo.Service) *MoveTaskTool {
	return &MoveTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *MoveTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("move_task",
		mcp.WithDescription("Move a task from one folder to another."),
		mcp.WithString("task_name",
			mcp.Required(),
			mcp.Description("Name of the task to move"),
		),
		mcp.WithString("destination_folder",
			mcp.Required(),
			mcp.Description("Name of the destination folder"),
		),
	)
}

// Handle processes the move_task tool call.
func (t *MoveTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("task_name", "")
	dest := req.GetString("destination_folder", "")
	if name == "" || dest == "" {
		return mcp.NewToolResultError("'task_name' and 'destination_folder' are required"), nil
	}
	out, err := t.svc.MoveTask(ctx, name, dest)
	if err != nil {
		return nil, fmt.Errorf("move task: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}

// DeleteTaskTool handles the delete_task MCP tool.
type DeleteTaskTool struct {
	svc *todo.Service
}

// NewDeleteTaskTool creates a DeleteTaskTool.
func NewDeleteTaskTool(svc *todo.Service) *DeleteTaskTool {
	return &DeleteTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task permanently."),
		mcp.WithString("task_name",
			mcp.Required(),
			mcp.Description("Name of the task to delete"),
		),
	)
}

// Handle processes the delete_task tool call.
func (t *DeleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("task_name", "")
	if name == "" {
		return mcp.NewToolResultError("'task_name' is required"), nil
	}
	out, err := t.svc.DeleteTask(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}

// EditTaskTool handles the edit_task MCP tool.
type EditTaskTool struct {
	svc *todo.Service
}

// NewEditTaskTool creates an EditTaskTool.
func NewEditTaskTool(svc *todo.Service) *EditTaskTool {
	return &EditTaskTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *EditTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("edit_task",
		mcp.WithDescription("Edit a task's properties."),
		mcp.WithString("old_task_name",
			mcp.Required(),
			mcp.Description("Current name of the task"),
		),
		mcp.WithString("new_task_name",
			mcp.Description("Optional new name for the task"),
		),
		mcp.WithString("new_folder",
			mcp.Description("Optional new folder to move the task to"),
		),
		mcp.WithString("new_recurrence",
			mcp.Description("Optional new recurrence pattern"),
		),
		mcp.WithString("new_time",
			mcp.Description("Optional new scheduled time"),
		),
		mcp.WithString("new_duration",
			mcp.Description("Optional new duration"),
		),
	)
}

// Handle processes the edit_task tool call.
func (t *EditTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldName := req.GetString("old_task_name", "")
	if oldName == "" {
		return mcp.NewToolResultError("'old_task_name' is required"), nil
	}
	out, err := t.svc.EditTask(ctx, oldName, todo.EditTaskParams{
		Name:       req.GetString("new_task_name", ""),
		Folder:     req.GetString("new_folder", ""),
		Recurrence: req.GetString("new_recurrence", ""),
		Time:       req.GetString("new_time", ""),
		Duration:   req.GetString("new_duration", ""),
	})
	if err != nil {
		return nil, fmt.Errorf("edit task: %w", err)
	}
	return mcp.NewToolResultText(out.Message), nil
}
