// cmd/slate/main.go
package main

import (
	"flag"
	stlog "log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bethropolis/slate/internal/app"
	"github.com/bethropolis/slate/internal/config"
	"github.com/bethropolis/slate/internal/logger"
)

var (
	configPath  string
	logFilePath string
	logLevel    string
	dataDir     string
)

func main() {
	flag.StringVar(&configPath, "config", "", "Path to config file (default: user config dir)")
	flag.StringVar(&logFilePath, "logfile", "", "Path to write log file")
	flag.StringVar(&logLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&dataDir, "data", "", "Directory for persisted surface state")
	flag.Parse()
	if flag.NArg() > 0 {
		dataDir = flag.Arg(0)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		stlog.Printf("Warning: config load: %v", err)
		cfg = config.Get()
	}

	// Flags override the config file.
	if logLevel != "" {
		cfg.Logger.LogLevel = logLevel
	}
	if logFilePath != "" {
		cfg.Logger.LogFilePath = logFilePath
	}
	if cfg.Logger.LogFilePath == "" {
		cfg.Logger.LogFilePath = config.DefaultLogFileName
	}

	level := slog.LevelInfo
	switch cfg.Logger.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		stlog.Printf("Warning: invalid log level '%s', defaulting to info", cfg.Logger.LogLevel)
	}

	logFile, err := os.OpenFile(cfg.Logger.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
	}
	defer logFile.Close()

	logger.Init(level, logFile)
	logger.SetTagFilter(cfg.Logger.EnabledTags, cfg.Logger.DisabledTags)

	if dataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			stlog.Fatalf("No data directory given and no user config dir: %v", err)
		}
		dataDir = filepath.Join(configDir, config.AppName, "surface")
	}

	logger.Infof("Starting slate surface (data: %s)...", dataDir)

	slateApp, err := app.NewApp(cfg, dataDir)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := slateApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("Slate finished.")
}
