package main

import (
	"fmt"
	"os"

	"github.com/chris/jot/internal/service"
	"github.com/spf13/cobra"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the launchd agent that runs `jot serve`",
}

func init() {
	serviceCmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Install the binary and load the launchd agent",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("resolving executable path: %w", err)
				}
				return newServiceManager(cmd).Install(exe)
			},
		},
		serviceAction("uninstall", "Unload the agent and remove the binary", (*service.Manager).Uninstall),
		serviceAction("start", "Start the agent", (*service.Manager).Start),
		serviceAction("stop", "Stop the agent", (*service.Manager).Stop),
		serviceAction("status", "Show whether the agent is loaded", (*service.Manager).Status),
		serviceAction("logs", "Follow the agent's logs", (*service.Manager).Logs),
	)
}

func newServiceManager(cmd *cobra.Command) *service.Manager {
	m := service.NewManager()
	m.Out = cmd.OutOrStdout()
	return m
}

func serviceAction(use, short string, fn func(*service.Manager) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fn(newServiceManager(cmd))
		},
	}
}
