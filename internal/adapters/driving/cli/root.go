// Package cli provides the mplemon command line interface.
package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
	"github.com/custodia-labs/mplemon/internal/core/ports/driving"
	"github.com/custodia-labs/mplemon/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services injected by main.
var (
	mergeService    driving.MergeService
	scaffoldService driving.ScaffoldService
	settingsService driving.SettingsService
)

// runLog carries the run fields main tags the services' logger with.
var runLog driven.Logger = logger.New()

// Persistent flags.
var (
	verbose    bool
	projectDir string
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "mplemon",
	Short: "Idempotent scaffolding for Maven and Jakarta EE projects",
	Long: `mplemon adds dependencies, plugins, properties and security roles to
pom.xml, web.xml and payara-web.xml without touching existing content.
Every command can be run again safely: entries already present are skipped.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", ".", "Project base directory or storage URL")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the core services.
func SetServices(merge driving.MergeService, scaffold driving.ScaffoldService, settings driving.SettingsService) {
	mergeService = merge
	scaffoldService = scaffold
	settingsService = settings
}

// SetLogger sets the logger for long-running commands. Nil is ignored.
func SetLogger(log driven.Logger) {
	if log != nil {
		runLog = log
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func currentProject() domain.Project {
	return domain.Project{BaseDir: projectDir}
}

func runOptions() domain.RunOptions {
	return domain.RunOptions{DryRun: dryRun}
}

// locate resolves p against the project unless it is absolute or a URL.
func locate(p string) string {
	if strings.Contains(p, "://") || filepath.IsAbs(p) {
		return p
	}
	return currentProject().Locate(filepath.ToSlash(p))
}

func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService.Get()
}
