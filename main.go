// VoiceLog backend: a task-list service driven by a conversational agent.
//
// The agent platform interprets free-text commands and calls back into
// this service's HTTP endpoints as tools. State lives in a document
// store (MongoDB in production, SQLite locally).
//
// Usage:
//
//	voicelog serve          # Start the HTTP backend
//	voicelog mcp            # Expose the operations as MCP tools on stdio
//	voicelog reset-agent    # Delete the agent and its local state file
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/voicelog/backend/internal/config"
	"github.com/voicelog/backend/internal/database"
	"github.com/voicelog/backend/internal/letta"
	"github.com/voicelog/backend/internal/mcptools"
	"github.com/voicelog/backend/internal/server"
	"github.com/voicelog/backend/internal/todo"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voicelog",
	Short: "VoiceLog - agent-driven task list backend",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "voicelog.toml", "path to the config file")
	rootCmd.AddCommand(serveCmd, mcpCmd, resetAgentCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Printf("Using %s storage", db.DatabaseType())

		svc := todo.NewService(db)
		bridge := newBridge(cfg)
		if bridge != nil {
			// Tool registration and agent setup are best-effort: the
			// CRUD endpoints work even when the platform is down.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			bridge.RegisterTools(ctx)
			if _, err := bridge.EnsureAgent(ctx); err != nil {
				log.Printf("WARNING: agent setup failed: %v", err)
			}
			cancel()
		} else {
			log.Printf("LETTA_API_KEY not set; /process_command disabled")
		}

		srv := server.New(db, svc, bridge)
		return srv.Start(cfg.ListenAddr)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the operations as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		s := mcptools.New(todo.NewService(db))
		return mcpserver.ServeStdio(s)
	},
}

var resetAgentCmd = &cobra.Command{
	Use:   "reset-agent",
	Short: "Delete the agent and its local state file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		bridge := newBridge(cfg)
		if bridge == nil {
			return fmt.Errorf("LETTA_API_KEY is not set")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := bridge.Reset(ctx); err != nil {
			return err
		}
		log.Printf("Ready to create a fresh agent; run: voicelog serve")
		return nil
	},
}

// openStore selects the backend: MongoDB when a URI is configured,
// SQLite otherwise.
func openStore(cfg *config.Config) (database.Store, error) {
	if cfg.Database.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return database.NewMongo(ctx, cfg.Database.MongoURI, cfg.Database.MongoName)
	}
	return database.New(cfg.Database.SQLitePath)
}

// newBridge builds the agent bridge, or nil when no API key is set.
func newBridge(cfg *config.Config) *letta.Bridge {
	if cfg.Letta.APIKey == "" {
		return nil
	}
	client := letta.NewClient(cfg.Letta.BaseURL, cfg.Letta.APIKey)
	return letta.NewBridge(client, cfg.AgentStatePath, cfg.BackendURL, cfg.Letta.Model)
}
