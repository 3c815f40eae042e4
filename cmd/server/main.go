package main

import (
	"log"

	"github.com/spf13/pflag"

	"kanmind/internal/config"
	"kanmind/internal/logger"
	"kanmind/internal/server"
)

// @title           KanMind API
// @version         1.0
// @description     Boards, tasks and comments for small teams.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type "Token" followed by a space and the key.

// @schemes http
func main() {
	envFile := pflag.String("env-file", "", "path to a .env file (default .env)")
	port := pflag.String("port", "", "HTTP port, overrides SERVER_PORT")
	migrateOnly := pflag.Bool("migrate-only", false, "apply the schema and exit")
	pflag.Parse()

	cfg := config.Load(*envFile)
	if *port != "" {
		cfg.ServerPort = *port
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}

	if *migrateOnly {
		db, err := server.OpenDatabase(cfg)
		if err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		if err := server.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		logger.Info("Migrations applied")
		return
	}

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("Server initialization failed: %v", err)
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
