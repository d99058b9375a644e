package main

import (
	"fmt"
	"os"

	"github.com/chris/jot/config"
	"github.com/chris/jot/internal/agent"
	"github.com/chris/jot/internal/db"
	"github.com/chris/jot/internal/llm"
	"github.com/chris/jot/internal/logger"
	"github.com/chris/jot/internal/reflection"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "jot",
	Short:         "Morning journal with AI reflections",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show info-level logs")
	rootCmd.AddCommand(reflectCmd, historyCmd, showCmd, statsCmd, serveCmd, serviceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds everything a command needs, built from the environment.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *db.DB
	llm   *llm.Client
	agent *agent.Agent
}

// newApp loads config and opens the database. quiet raises the log level to
// warn unless --verbose is set, so CLI output is not buried in logs.
func newApp(quiet bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	if quiet && !verbose {
		log = log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	client, err := llm.NewClient(llm.Config{
		Provider: cfg.LLMProvider,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLMModel,
		Timeout:  cfg.LLMTimeout,
	}, log)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}

	gen := reflection.NewGenerator(client, log, reflection.WithLenientHeaders(cfg.LenientHeaders))
	return &app{
		cfg:   cfg,
		log:   log,
		db:    database,
		llm:   client,
		agent: agent.New(database, gen, log),
	}, nil
}

func (a *app) Close() {
	a.db.Close()
	_ = a.log.Sync()
}

// apiStatus is "connected" when a key is configured and "fallback" otherwise.
func (a *app) apiStatus() string {
	if a.llm.Configured() {
		return "connected"
	}
	return "fallback"
}
