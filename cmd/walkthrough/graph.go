package main

import (
	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [page]",
	Short: "Export the tour as a Mermaid diagram",
	Long:  `Inspects the page and outputs a Mermaid diagram (graph TD) of the step sequence and its exits.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := cli.NewLogger(cfg.Log.Level, false)
		if err != nil {
			return err
		}
		engine, err := cli.CreateEngine(pagePath(cmd, args), cfg, logger)
		if err != nil {
			return err
		}

		opts := cli.GraphOptions{}
		opts.TotalSteps, _ = cmd.Flags().GetInt("steps")
		opts.SessionID, _ = cmd.Flags().GetString("session")

		if opts.SessionID != "" {
			sessions, closeStore, err := cli.OpenSessions(cmd.Context(), cfg.Store, cfg.Redis, logger)
			if err != nil {
				return err
			}
			defer closeStore()
			opts.Sessions = sessions
		}

		return cli.WriteGraph(cmd.Context(), cmd.OutOrStdout(), engine, opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("steps", 0, "Declared number of steps (default highest tagged step)")
	graphCmd.Flags().StringP("session", "s", "", "Highlight the visited and current steps of a session")
}
