package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden at link time with -ldflags "-X unfold.dev/pkg/unfold/cmd.version=...".
var version = ""

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version and Go version used to build unfold.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()

			toolVersion := version
			if toolVersion == "" && ok {
				toolVersion = info.Main.Version
			}

			if toolVersion == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("unfold version\t", toolVersion)

			if ok {
				cmd.Println("go version\t", info.GoVersion)
			}
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
