package main

import (
	"log/slog"
	"os"

	_ "github.com/sashafierce98/TGPTaskflow/docs"
	"github.com/sashafierce98/TGPTaskflow/internal/config"
	"github.com/sashafierce98/TGPTaskflow/internal/logging"
	"github.com/sashafierce98/TGPTaskflow/internal/server"
)

// @title           TGP Taskflow API
// @version         1.0
// @description     Kanban boards for the production floor: columns with WIP limits, cards and a Questions column with answer threads.

// @BasePath  /api

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session_token

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	logging.Init(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	s, err := server.Init(cfg)
	if err != nil {
		slog.Error("❌ Server initialization failed", "err", err)
		os.Exit(1)
	}

	s.Run()
}
