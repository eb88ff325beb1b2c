package main

import (
	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [page]",
	Short: "Run the tour in the terminal",
	Long: `Shows the tour step by step. Type next (n or enter), back (b) or close (q).
With --session the tour is saved after every command and resumed on the next run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := cli.RunOptions{
			PagePath: pagePath(cmd, args),
			Config:   cfg,
			Input:    cmd.InOrStdin(),
			Output:   cmd.OutOrStdout(),
		}
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.TotalSteps, _ = cmd.Flags().GetInt("steps")

		return cli.Execute(opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (NDJSON effects on stdout, commands on stdin)")
	runCmd.Flags().Bool("debug", false, "Log lifecycle events to stderr")
	runCmd.Flags().Bool("plain", false, "Do not render step descriptions as markdown")
	runCmd.Flags().StringP("session", "s", "", "Persist the tour under this session id and resume it")
	runCmd.Flags().Bool("fresh", false, "Discard the saved session before starting")
	runCmd.Flags().Int("steps", 0, "Declared number of steps (default highest tagged step)")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
