package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/skilldash/internal/config"
	"github.com/abhisek/skilldash/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "skilldash",
	Short: "Skills dashboard for your terminal",
	Long: "Skilldash tracks your skills, runs interactive assessments and follows " +
		"learning paths, all from the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLDASH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/skilldash/config.yaml)")
	rootCmd.PersistentFlags().String("assessments", "", "JSON file with extra assessment definitions")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(assessmentsCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveConfigPath returns the --config flag or the default XDG path.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file and SKILLDASH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}
