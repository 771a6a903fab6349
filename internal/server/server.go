// Package server provides the HTTP server and handlers.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/voicelog/backend/internal/database"
	"github.com/voicelog/backend/internal/letta"
	"github.com/voicelog/backend/internal/todo"
)

// Server is the main HTTP server.
type Server struct {
	db     database.Store
	svc    *todo.Service
	bridge *letta.Bridge // nil when the agent platform is not configured
	router chi.Router
}

// New creates a new server. bridge may be nil, in which case
// /process_command reports the platform as unconfigured.
func New(db database.Store, svc *todo.Service, bridge *letta.Bridge) *Server {
	s := &Server{
		db:     db,
		svc:    svc,
		bridge: bridge,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Tool endpoints: the agent calls back into these.
	r.Route("/api", func(r chi.Router) {
		r.Post("/create_folder", s.handleCreateFolder)
		r.Post("/create_task", s.handleCreateTask)
		r.Post("/move_task", s.handleMoveTask)
		r.Post("/delete_task", s.handleDeleteTask)
		r.Post("/delete_folder", s.handleDeleteFolder)
		r.Post("/edit_folder_name", s.handleEditFolderName)
		r.Post("/edit_task", s.handleEditTask)
		r.Post("/get_folder_contents", s.handleGetFolderContents)
		r.Get("/list_all_folders", s.handleListAllFolders)
	})

	// Command relay and liveness.
	r.Post("/process_command", s.handleProcessCommand)
	r.Get("/health", s.handleHealth)

	// Direct UI reads, bypassing the agent.
	r.Get("/folders", s.handleFolders)
	r.Get("/folders/{folderID}/tasks", s.handleFolderTasks)
	r.Get("/tasks", s.handleTasks)

	s.router = r
}

// Start starts the server.
func (s *Server) Start(addr string) error {
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// --- Tool Endpoint Handlers ---

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderName string `json:"folder_name"`
		Emoji      string `json:"emoji"`
	}
	if !decode(w, r, &req) || !require(w, req.FolderName) {
		return
	}
	out, err := s.svc.CreateFolder(r.Context(), req.FolderName, req.Emoji)
	s.respondResult(w, out, err)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskName   string `json:"task_name"`
		FolderName string `json:"folder_name"`
		Recurrence string `json:"recurrence"`
		Time       string `json:"time"`
		Duration   string `json:"duration"`
	}
	if !decode(w, r, &req) || !require(w, req.TaskName, req.FolderName) {
		return
	}
	out, err := s.svc.CreateTask(r.Context(), req.TaskName, req.FolderName, req.Recurrence, req.Time, req.Duration)
	s.respondResult(w, out, err)
}

func (s *Server) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskName          string `json:"task_name"`
		DestinationFolder string `json:"destination_folder"`
	}
	if !decode(w, r, &req) || !require(w, req.TaskName, req.DestinationFolder) {
		return
	}
	out, err := s.svc.MoveTask(r.Context(), req.TaskName, req.DestinationFolder)
	s.respondResult(w, out, err)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskName string `json:"task_name"`
	}
	if !decode(w, r, &req) || !require(w, req.TaskName) {
		return
	}
	out, err := s.svc.DeleteTask(r.Context(), req.TaskName)
	s.respondResult(w, out, err)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderName string `json:"folder_name"`
	}
	if !decode(w, r, &req) || !require(w, req.FolderName) {
		return
	}
	out, err := s.svc.DeleteFolder(r.Context(), req.FolderName)
	s.respondResult(w, out, err)
}

func (s *Server) handleEditFolderName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldName  string `json:"old_name"`
		NewName  string `json:"new_name"`
		NewEmoji string `json:"new_emoji"`
	}
	if !decode(w, r, &req) || !require(w, req.OldName, req.NewName) {
		return
	}
	out, err := s.svc.RenameFolder(r.Context(), req.OldName, req.NewName, req.NewEmoji)
	s.respondResult(w, out, err)
}

func (s *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldTaskName   string `json:"old_task_name"`
		NewTaskName   string `json:"new_task_name"`
		NewFolder     string `json:"new_folder"`
		NewRecurrence string `json:"new_recurrence"`
		NewTime       string `json:"new_time"`
		NewDuration   string `json:"new_duration"`
	}
	if !decode(w, r, &req) || !require(w, req.OldTaskName) {
		return
	}
	out, err := s.svc.EditTask(r.Context(), req.OldTaskName, todo.EditTaskParams{
		Name:       req.NewTaskName,
		Folder:     req.NewFolder,
		Recurrence: req.NewRecurrence,
		Time:       req.NewTime,
		Duration:   req.NewDuration,
	})
	s.respondResult(w, out, err)
}

func (s *Server) handleGetFolderContents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderName string `json:"folder_name"`
	}
	if !decode(w, r, &req) || !require(w, req.FolderName) {
		return
	}
	out, err := s.svc.FolderContents(r.Context(), req.FolderName)
	s.respondResult(w, out, err)
}

func (s *Server) handleListAllFolders(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.ListFolders(r.Context())
	s.respondResult(w, out, err)
}

// --- Command & Health Handlers ---

func (s *Server) handleProcessCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty text"})
		return
	}
	if s.bridge == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "agent platform not configured"})
		return
	}

	log.Printf("Received command: %s", req.Text)
	response, err := s.bridge.ProcessCommand(r.Context(), req.Text)
	if err != nil {
		log.Printf("Error processing command: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	var agentID any
	if s.bridge != nil {
		if id := s.bridge.AgentID(); id != "" {
			agentID = id
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"agent_id": agentID,
	})
}

// --- UI Read Handlers ---

type folderDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type taskDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Completed  bool   `json:"completed"`
	Recurrence string `json:"recurrence"`
	Time       string `json:"time"`
	Duration   string `json:"duration"`
	Folder     string `json:"folder"`
}

type taskSummaryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Folder    string `json:"folder"`
}

func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.db.ListFolders(r.Context())
	if err != nil {
		http.Error(w, "Failed to list folders", http.StatusInternalServerError)
		return
	}
	list := make([]folderDTO, 0, len(folders))
	for _, f := range folders {
		list = append(list, folderDTO{ID: f.ID, Name: f.Name, Emoji: f.Emoji})
	}
	writeJSON(w, http.StatusOK, map[string]any{"folders": list, "success": true})
}

func (s *Server) handleFolderTasks(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderID")
	tasks, err := s.db.GetTasksByFolder(r.Context(), folderID)
	if err != nil {
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	list := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		list = append(list, taskDTO{
			ID:         t.ID,
			Name:       t.Name,
			Completed:  t.Completed,
			Recurrence: t.Recurrence,
			Time:       t.Time,
			Duration:   t.Duration,
			Folder:     t.Folder,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": list, "success": true})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.db.GetAllTasks(r.Context())
	if err != nil {
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	list := make([]taskSummaryDTO, 0, len(tasks))
	for _, t := range tasks {
		list = append(list, taskSummaryDTO{ID: t.ID, Name: t.Name, Completed: t.Completed, Folder: t.Folder})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": list, "success": true})
}

// --- Helpers ---

// respondResult writes the operation outcome. NotFound and Conflict are
// part of the text contract and still return 200; only store failures
// become 500s.
func (s *Server) respondResult(w http.ResponseWriter, out todo.Outcome, err error) {
	if err != nil {
		log.Printf("Operation error: %v", err)
		http.Error(w, "Operation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": out.Message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return false
	}
	return true
}

// require rejects the request when any required field is empty.
func require(w http.ResponseWriter, fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
