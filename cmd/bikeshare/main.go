// Package main provides the CLI entrypoint for bikeshare.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/stats"
	"github.com/verte-zerg/bikeshare/internal/tui"
)

const (
	defaultDataDir     = "."
	defaultReportWidth = 40
	maxReportWidth     = 80
)

var (
	dataDir  string
	parallel bool

	statsCity  string
	statsMonth string
	statsDay   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bikeshare trip data",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runShellCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir, "directory holding the city datasets")
	rootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "compute statistic groups concurrently")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// newLoader merges the config file with flags and builds the dataset loader.
func newLoader(cmd *cobra.Command) (*dataset.Loader, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &dataDir, fileCfg.Data.Dir)
	applyBoolConfig(cmd, "parallel", &parallel, fileCfg.Data.Parallel)
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("--data-dir must not be empty")
	}
	registry := dataset.NewRegistry(dataDir, fileCfg.CitiesOrDefault())
	if len(registry.Cities()) == 0 {
		return nil, fmt.Errorf("no cities configured")
	}
	return dataset.NewLoader(registry), nil
}

func runShellCmd(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	program := tea.NewProgram(tui.NewModel(loader, parallel), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for one city",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCity, "city", "", "city to analyze (see: bikeshare cities)")
	cmd.Flags().StringVar(&statsMonth, "month", model.FilterAll, "month filter: all, january ... june")
	cmd.Flags().StringVar(&statsDay, "day", model.FilterAll, "day filter: all, monday ... sunday")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	if strings.TrimSpace(statsCity) == "" {
		return fmt.Errorf("--city is required (choose from %s)", strings.Join(loader.Registry().Cities(), ", "))
	}
	city, err := loader.Registry().ParseCity(statsCity)
	if err != nil {
		return err
	}
	filter, err := dataset.NewFilter(statsMonth, statsDay)
	if err != nil {
		return err
	}

	rs, err := loader.Load(context.Background(), city, filter)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	if rs.Len() == 0 {
		logErrf("no trips match city=%s month=%s day=%s\n", city, filter.Month, filter.Day)
	}
	report := stats.BuildReport(rs, parallel)
	if err := stats.RenderReportWithWidth(cmd.OutOrStdout(), report, reportWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List configured cities and their datasets",
		Args:  cobra.NoArgs,
		RunE:  runCitiesCmd,
	}
}

func runCitiesCmd(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader(cmd)
	if err != nil {
		return err
	}
	registry := loader.Registry()
	for _, city := range registry.Cities() {
		src, err := registry.Source(city)
		if err != nil {
			return err
		}
		status := ""
		if _, err := os.Stat(src); err != nil {
			status = " (missing)"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s%s\n", city, src, status); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bikeshare configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# dir = %q          # Directory holding the city datasets
# parallel = false   # Compute statistic groups concurrently

# City datasets. Relative paths resolve against [data] dir.
# Files ending in .db, .sqlite or .sqlite3 are read from their "trips" table.
# [cities]
# chicago = "chicago.csv"
# "new york city" = "new_york_city.csv"
# washington = "washington.csv"
`, defaultDataDir)
}

// reportWidth sizes separators to the terminal, capped for readability.
func reportWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultReportWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultReportWidth
	}
	if width > maxReportWidth {
		return maxReportWidth
	}
	return width
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
