package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/voicelog/backend/internal/todo"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all nine operation tools registered.
// This is the single place where the MCP surface is wired.
func New(svc *todo.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"voicelog",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	createFolder := NewCreateFolderTool(svc)
	s.AddTool(createFolder.Definition(), createFolder.Handle)

	createTask := NewCreateTaskTool(svc)
	s.AddTool(createTask.Definition(), createTask.Handle)

	moveTask := NewMoveTaskTool(svc)
	s.AddTool(moveTask.Definition(), moveTask.Handle)

	deleteTask := NewDeleteTaskTool(svc)
	s.AddTool(deleteTask.Definition(), deleteTask.Handle)

	deleteFolder := NewDeleteFolderTool(svc)
	s.AddTool(deleteFolder.Definition(), deleteFolder.Handle)

	editFolderName := NewEditFolderNameTool(svc)
	s.AddTool(editFolderName.Definition(), editFolderName.Handle)

	editTask := NewEditTaskTool(svc)
	s.AddTool(editTask.Definition(), editTask.Handle)

	folderContents := NewGetFolderContentsTool(svc)
	s.AddTool(folderContents.Definition(), folderContents.Handle)

	listFolders := NewListAllFoldersTool(svc)
	s.AddTool(listFolders.Definition(), listFolders.Handle)

	return s
}
