package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/aretw0/walkthrough/pkg/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted tours",
	Long:  `List, inspect, and remove tours saved in the configured session store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(sessions *session.Manager) error {
			ids, err := sessions.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No saved sessions found.")
				return nil
			}
			fmt.Fprintln(out, "Saved Sessions:")
			for _, id := range ids {
				fmt.Fprintln(out, "- "+id)
			}
			return nil
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(sessions *session.Manager) error {
			state, err := sessions.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", args[0], err)
			}
			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(sessions *session.Manager) error {
			var errs []error
			for _, id := range args {
				if err := sessions.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
			}
			return errors.Join(errs...)
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func withSessions(cmd *cobra.Command, fn func(*session.Manager) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := cli.NewLogger(cfg.Log.Level, false)
	if err != nil {
		return err
	}
	sessions, closeStore, err := cli.OpenSessions(cmd.Context(), cfg.Store, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(sessions)
}
