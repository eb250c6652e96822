package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is the CLI logger, shared by all commands.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "stateview",
})

func main() {
	rootCmd := &cobra.Command{
		Use:   "stateview",
		Short: "Server-driven UI state engine for Go web apps",
		Long: `stateview resolves per-request view state from query parameters,
cookies, and struct defaults, persists it across navigation, and keeps
synthesized URLs consistent with the state they were built from.

Commands operate on a project with a stateview.json at its root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		initCmd(),
		errorsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
