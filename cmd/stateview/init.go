package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stateview-dev/stateview/internal/config"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default stateview.json",
		Long: `Write a default stateview.json to the given directory (default: ".").

Fails if the file already exists unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing stateview.json")

	return cmd
}

func runInit(dir string, force bool) error {
	if config.Exists(dir) && !force {
		return fmt.Errorf("%s already exists in %s (use --force to overwrite)",
			config.ConfigFileName, dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	cfg := config.New()
	cfg.Name = filepath.Base(absOrSelf(dir))
	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	success("wrote %s", path)
	return nil
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
