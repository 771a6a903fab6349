package letta

import (
	"fmt"
	"net/http"
	"strings"
)

// Param describes one tool parameter. All parameters are strings; the
// agent platform handles coercion.
type Param struct {
	Name        string
	Description string
	Required    bool
}

// ToolDescriptor declares one operation exposed to the agent. The agent
// invokes the tool, which calls back into this service's HTTP endpoint.
type ToolDescriptor struct {
	Name        string
	Description string
	Method      string // HTTP method of the backing endpoint
	Path        string // e.g. /api/create_folder
	Params      []Param
}

// Tools returns the descriptors for all nine operations. This table is
// the single source for tool registration.
func Tools() []ToolDescriptor {
	return []ToolDescriptor{
		{
			Name:        "create_folder",
			Description: "Create a new folder to organize tasks.",
			Method:      http.MethodPost,
			Path:        "/api/create_folder",
			Params: []Param{
				{Name: "folder_name", Description: "Name of the folder to create", Required: true},
				{Name: "emoji", Description: "Optional emoji icon for the folder"},
			},
		},
		{
			Name:        "create_task",
			Description: "Create a new task in a specified folder.",
			Method:      http.MethodPost,
			Path:        "/api/create_task",
			Params: []Param{
				{Name: "task_name", Description: "Name of the task", Required: true},
				{Name: "folder_name", Description: "Name of the folder to add the task to", Required: true},
				{Name: "recurrence", Description: "How often the task repeats (once, daily, weekly, etc.)"},
				{Name: "time", Description: "Optional scheduled time for the task"},
				{Name: "duration", Description: "Optional duration for the task"},
			},
		},
		{
			Name:        "move_task",
			Description: "Move a task from one folder to another.",
			Method:      http.MethodPost,
			Path:        "/api/move_task",
			Params: []Param{
				{Name: "task_name", Description: "Name of the task to move", Required: true},
				{Name: "destination_folder", Description: "Name of the destination folder", Required: true},
			},
		},
		{
			Name:        "delete_task",
			Description: "Delete a task permanently.",
			Method:      http.MethodPost,
			Path:        "/api/delete_task",
			Params: []Param{
				{Name: "task_name", Description: "Name of the task to delete", Required: true},
			},
		},
		{
			Name:        "delete_folder",
			Description: "Delete a folder and all tasks inside it.",
			Method:      http.MethodPost,
			Path:        "/api/delete_folder",
			Params: []Param{
				{Name: "folder_name", Description: "Name of the folder to delete", Required: true},
			},
		},
		{
			Name:        "edit_folder_name",
			Description: "Rename a folder and optionally change its emoji.",
			Method:      http.MethodPost,
			Path:        "/api/edit_folder_name",
			Params: []Param{
				{Name: "old_name", Description: "Current name of the folder", Required: true},
				{Name: "new_name", Description: "New name for the folder", Required: true},
				{Name: "new_emoji", Description: "Optional new emoji for the folder"},
			},
		},
		{
			Name:        "edit_task",
			Description: "Edit a task's properties.",
			Method:      http.MethodPost,
			Path:        "/api/edit_task",
			Params: []Param{
				{Name: "old_task_name", Description: "Current name of the task", Required: true},
				{Name: "new_task_name", Description: "Optional new name for the task"},
				{Name: "new_folder", Description: "Optional new folder to move the task to"},
				{Name: "new_recurrence", Description: "Optional new recurrence pattern"},
				{Name: "new_time", Description: "Optional new scheduled time"},
				{Name: "new_duration", Description: "Optional new duration"},
			},
		},
		{
			Name:        "get_folder_contents",
			Description: "Get all tasks in a specific folder.",
			Method:      http.MethodPost,
			Path:        "/api/get_folder_contents",
			Params: []Param{
				{Name: "folder_name", Description: "Name of the folder to view", Required: true},
			},
		},
		{
			Name:        "list_all_folders",
			Description: "List all folders and their task counts.",
			Method:      http.MethodGet,
			Path:        "/api/list_all_folders",
		},
	}
}

// JSONSchema builds the platform-side parameter schema for the tool.
func (t ToolDescriptor) JSONSchema() map[string]any {
	properties := map[string]any{}
	var required []string
	for _, p := range t.Params {
		properties[p.Name] = map[string]any{
			"type":        "string",
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	params := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		params["required"] = required
	}
	return map[string]any{
		"name":        t.Name,
		"description": t.Description,
		"parameters":  params,
	}
}

// SourceCode generates the Python callback the platform executes when
// the agent calls the tool: a requests round trip back to this service.
func (t ToolDescriptor) SourceCode(backendURL string) string {
	var b strings.Builder

	args := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		if p.Required {
			args = append(args, fmt.Sprintf("%s: str", p.Name))
		} else {
			args = append(args, fmt.Sprintf("%s: str = \"\"", p.Name))
		}
	}
	fmt.Fprintf(&b, "def %s(%s) -> str:\n", t.Name, strings.Join(args, ", "))

	// Docstring: the platform parses it for the agent-facing help text.
	fmt.Fprintf(&b, "    \"\"\"%s\n", t.Description)
	if len(t.Params) > 0 {
		b.WriteString("\n    Args:\n")
		for _, p := range t.Params {
			fmt.Fprintf(&b, "        %s: %s\n", p.Name, p.Description)
		}
	}
	b.WriteString("\n    Returns:\n        Success or error message\n    \"\"\"\n")

	b.WriteString("    import requests\n")
	url := strings.TrimRight(backendURL, "/") + t.Path
	if t.Method == http.MethodGet {
		fmt.Fprintf(&b, "    response = requests.get(%q)\n", url)
	} else {
		fields := make([]string, 0, len(t.Params))
		for _, p := range t.Params {
			fields = append(fields, fmt.Sprintf("%q: %s", p.Name, p.Name))
		}
		fmt.Fprintf(&b, "    response = requests.post(%q, json={%s})\n", url, strings.Join(fields, ", "))
	}
	b.WriteString("    return response.json()[\"result\"]\n")

	return b.String()
}
