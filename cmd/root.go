// Package cmd provides the root command and CLI setup for unfold.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"unfold.dev/pkg/unfold/internal/adapter"
	"unfold.dev/pkg/unfold/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var archiver adapter.Archiver
var opener adapter.Opener
var runLocker adapter.RunLocker
var unfolder domain.Unfolder
var workflow domain.Workflow

// logFileFlag, verboseFlag and formatFlag are root-level flags shared by all commands.
var logFileFlag string
var verboseFlag bool
var formatFlag string

func init() {
	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	archiver = adapter.NewZipArchiver()
	opener = adapter.NewSystemOpener()
	runLocker = adapter.NewFlockRunLocker()
	unfolder = domain.NewUnfolder(fsAdapter, reportStore, archiver, opener, runLocker)
	workflow = domain.NewWorkflow(unfolder)
}

const rootLongDescription = `Unfold flattens a nested folder into a single sibling folder.

Every file found anywhere under the source is copied into <source>_unfolded.
Files that share a name get a [conflict-N]- prefix, and a documentation.md
audit log records where each file came from.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unfold",
		Short: "Flatten nested folders into one",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatKey), "output format: text, json or yaml")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrRunHasErrors) {
		return 2
	}

	return 1
}
