package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mangasio",
	Short: "Download and monitor manga chapters from mangas.io.",
	Long: `Download and monitor manga chapters from mangas.io.

Provide a configuration file using one of the following methods:
1. Use the --config <path> or -c <path> flag.
2. Place a config.yaml file in the default user configuration directory (e.g., ~/.config/mangasio/).
3. Place a config.yaml file a folder inside your home directory (e.g., ~/.mangasio/).
4. Place a config.yaml file in the directory of the binary.

Chapters are addressed by their reader url, e.g. https://www.mangas.io/lire/<manga>/<chapter>`,
}

func init() {
	initRootFlags()
	initDownloadFlags()
	initInfoFlags()
	initLoginFlags()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(monitorCmd)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
