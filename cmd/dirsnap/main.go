package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dirsnap/internal/app"
	"dirsnap/internal/config"
	"dirsnap/internal/history"
	"dirsnap/internal/snap"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Backup", "History").
func newApp(operation string) (*app.App, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// boolFlag returns the flag value when set on the command line, otherwise
// the configured default.
func boolFlag(cmd *cobra.Command, name string, def bool) bool {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return def
}

var rootCmd = &cobra.Command{
	Use:   "dirsnap",
	Short: "Local directory backup tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base name: %s\n", cfg.BaseName)
		fmt.Printf("Log dir:   %s\n", cfg.LogDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base name:    %s\n", cfg.BaseName)
		fmt.Printf("Log dir:      %s\n", cfg.LogDir)
		fmt.Printf("History:      %s\n", cfg.History.Type)
		fmt.Printf("History dir:  %s\n", cfg.History.DataDir)
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup [PATH]",
	Short: "Snapshot a directory into a fresh timestamped backup",
	Long: `Snapshot the files of a directory into a freshly created, uniquely named
backup directory under it. With --delete, originals are verified against
their copies and removed; verification failures always leave the original
in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Backup")
		if err != nil {
			return err
		}
		defer a.Close()

		target := "."
		if len(args) > 0 {
			target = args[0]
		}
		absTarget, err := filepath.Abs(target)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		baseName := a.DefaultBaseName()
		if cmd.Flags().Changed("name") {
			baseName, _ = cmd.Flags().GetString("name")
		}
		force, _ := cmd.Flags().GetBool("force")

		defaults := a.BackupDefaults()
		opts := snap.Options{
			SourceRoot:     absTarget,
			BaseName:       baseName,
			Recursive:      boolFlag(cmd, "recursive", defaults.Recursive),
			Delete:         boolFlag(cmd, "delete", defaults.Delete),
			PruneEmptyDirs: boolFlag(cmd, "prune-empty-dirs", defaults.PruneEmptyDirs),
			UseDigest:      boolFlag(cmd, "hash", defaults.UseDigest),
			Force:          force,
		}

		if _, err := a.Backup(opts); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View backup run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("History")
		if err != nil {
			return err
		}
		defer a.Close()

		runs, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No backup runs recorded.")
			return nil
		}

		for _, run := range runs {
			fmt.Println(formatRun(run))
		}
		return nil
	},
}

// formatRun renders one history row. The ID is shortened for display but
// may be arbitrary text when the database was written externally.
func formatRun(run *history.Run) string {
	id := run.ID
	if len(id) > 8 {
		id = id[:8]
	}
	duration := run.FinishedAt.Sub(run.StartedAt)
	return fmt.Sprintf("%s  %s  %-8s  copied:%d deleted:%d failed:%d  %s  %s",
		id,
		run.StartedAt.Format("2006-01-02 15:04:05"),
		run.Status,
		run.Copied,
		run.Deleted,
		run.Failed,
		duration.Truncate(time.Millisecond),
		run.SourceRoot,
	)
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().BoolP("recursive", "r", false, "Copy directories recursively (files + directories)")
	backupCmd.Flags().StringP("name", "n", "backup", "Base name for the backup directory")
	backupCmd.Flags().BoolP("delete", "d", false, "Delete original files after successful verification")
	backupCmd.Flags().Bool("prune-empty-dirs", false, "After deleting, remove source directories left empty")
	backupCmd.Flags().Bool("hash", false, "Verify copies with SHA-256 before deleting (slower, stronger)")
	backupCmd.Flags().Bool("force", false, "Skip the confirmation prompt when --delete is used")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to show")
}
