package main

import (
	"os/signal"
	"syscall"

	"github.com/chris/jot/internal/auth"
	"github.com/chris/jot/internal/discord"
	"github.com/chris/jot/internal/scheduler"
	"github.com/chris/jot/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the morning check-in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if sched := startScheduler(a); sched != nil {
			defer sched.Stop()
		}

		users, err := a.cfg.ParseUsers()
		if err != nil {
			return err
		}
		au, err := auth.New(users, a.cfg.SessionDays, a.log)
		if err != nil {
			return err
		}

		if a.cfg.LogMode == "production" || a.cfg.LogMode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}
		a.log.Info("starting",
			zap.String("provider", a.llm.Provider()),
			zap.String("model", a.llm.Model()),
			zap.String("api_status", a.apiStatus()),
		)
		return server.New(a.agent, au, a.llm, a.log).Run(ctx, a.cfg.HTTPAddr)
	},
}

// startScheduler wires the daily check-in when a webhook is configured.
func startScheduler(a *app) *scheduler.Scheduler {
	if a.cfg.DiscordWebhook == "" {
		a.log.Info("DISCORD_WEBHOOK_URL not set, morning check-in disabled")
		return nil
	}
	hook, err := discord.NewWebhook(a.cfg.DiscordWebhook, a.log)
	if err != nil {
		a.log.Error("morning check-in disabled", zap.Error(err))
		return nil
	}
	sched := scheduler.New(a.agent, hook, a.log)
	if err := sched.Schedule(a.cfg.CheckInCron); err != nil {
		a.log.Error("morning check-in disabled", zap.Error(err))
		return nil
	}
	sched.Start()
	return sched
}

