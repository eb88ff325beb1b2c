package main

import (
	"github.com/aretw0/walkthrough/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [page]",
	Short: "Check the page for tour gaps",
	Long: `Scans every tagged element and reports missing steps, duplicate markers, markers that
never resolve and steps without a description. Exits non-zero when the tour would abort early.`,
	Args: cobra.MaximumNArgs(1),
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

		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.ValidatePage(cmd.OutOrStdout(), engine, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print the report as JSON")
}
