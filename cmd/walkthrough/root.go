package main

import (
	"fmt"
	"os"

	"github.com/aretw0/walkthrough/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "walkthrough",
	Short: "Walkthrough runs guided product tours over tagged pages",
	Long: `Walkthrough steps through the elements of a page tagged tour-target-1, tour-target-2, ...
and anchors a callout next to each one. Pages are HTML files, YAML/JSON manifests or
directories of Markdown documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.ReadFile(v, cfgFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default searches walkthrough.yaml in $XDG_CONFIG_HOME/walkthrough and .)")
	pf.String("dir", ".", "Page to tour: an HTML file, a manifest or a Markdown directory")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error or off")
	pf.String("store", config.BackendMemory, "Session store: memory, file, redis or sqlite")
	pf.String("store-path", "", "Directory of the file store or database of the sqlite store")
	pf.String("redis-addr", "", "Redis address for the redis store")
	pf.String("marker-prefix", "", "Marker prefix of tour targets (default tour-target-)")
	pf.String("annotation", "", "Annotation holding step descriptions (default walkthrough)")

	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("store.backend", pf.Lookup("store"))
	_ = v.BindPFlag("store.path", pf.Lookup("store-path"))
	_ = v.BindPFlag("redis.addr", pf.Lookup("redis-addr"))
	_ = v.BindPFlag("tour.marker_prefix", pf.Lookup("marker-prefix"))
	_ = v.BindPFlag("tour.annotation", pf.Lookup("annotation"))
}

// pagePath prefers an explicit --dir, then the first argument.
func pagePath(cmd *cobra.Command, args []string) string {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		return args[0]
	}
	return dir
}

// loadConfig resolves defaults, the config file, WALKTHROUGH_* variables and flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
