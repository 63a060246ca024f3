package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"unfold.dev/pkg/unfold/internal/controller"
	"unfold.dev/pkg/unfold/internal/domain"
	m "unfold.dev/pkg/unfold/internal/model"
)

const runLongDescription = `Flatten <source> into <source>_unfolded.

Modes:
  copy     copy every file and keep the source (default)
  move     copy every file, then delete the source only if nothing failed
  dry-run  compute and report the plan without touching the disk

Folders containing node_modules are rejected, as are folders that already
end in _unfolded.`

var runModeFlag string
var runZipFlag bool
var runOpenFlag bool
var runHTMLFlag bool
var runConcurrencyFlag int
var runProgressEveryFlag int
var runIgnoreFlag []string
var runSkipDirFlag []string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Flatten a folder",
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := m.ParseMode(viper.GetString(runModeKey))
			if err != nil {
				return err
			}

			ui, err := controller.NewFormattedUI(cmd, viper.GetString(formatKey), controller.IsTTY(cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			// Argument errors are reported above with usage; run errors are not.
			cmd.SilenceUsage = true

			err = workflow.Unfold(cmd.Context(), ui, domain.UnfoldArgs{
				Source: m.Path(args[0]),
				Options: m.RunOptions{
					Mode:       mode,
					ShouldZip:  viper.GetBool(runZipKey),
					ShouldOpen: viper.GetBool(runOpenKey),
				},
				Settings: runSettings(),
			})
			if err != nil {
				return fmt.Errorf("unfold %s: %w", args[0], err)
			}

			return nil
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runModeFlag, modeFlagName, "m", viper.GetString(runModeKey), "copy, move or dry-run")
	bindFlagToConfig(cmd.Flags().Lookup(modeFlagName), runModeKey)

	cmd.Flags().BoolVarP(&runZipFlag, zipFlagName, "z", viper.GetBool(runZipKey), "package the output folder as <source>_unfolded.zip")
	bindFlagToConfig(cmd.Flags().Lookup(zipFlagName), runZipKey)

	cmd.Flags().BoolVar(&runOpenFlag, openFlagName, viper.GetBool(runOpenKey), "reveal the result in the file manager")
	bindFlagToConfig(cmd.Flags().Lookup(openFlagName), runOpenKey)

	cmd.Flags().BoolVar(&runHTMLFlag, htmlFlagName, viper.GetBool(reportHTMLKey), "also write documentation.html")
	bindFlagToConfig(cmd.Flags().Lookup(htmlFlagName), reportHTMLKey)

	cmd.Flags().IntVarP(&runConcurrencyFlag, concurrencyFlagName, "p", viper.GetInt(runConcurrencyKey), "maximum concurrent directory reads")
	bindFlagToConfig(cmd.Flags().Lookup(concurrencyFlagName), runConcurrencyKey)

	cmd.Flags().IntVar(&runProgressEveryFlag, progressEveryFlagName, viper.GetInt(runProgressEveryKey), "files between progress updates")
	bindFlagToConfig(cmd.Flags().Lookup(progressEveryFlagName), runProgressEveryKey)

	cmd.Flags().StringArrayVarP(&runIgnoreFlag, ignoreFlagName, "x", viper.GetStringSlice(walkIgnoreKey), "additional file name to ignore (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(ignoreFlagName), walkIgnoreKey)

	cmd.Flags().StringArrayVar(&runSkipDirFlag, skipDirFlagName, viper.GetStringSlice(walkSkipDirsKey), "additional folder name that is never unfolded (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(skipDirFlagName), walkSkipDirsKey)
}
