// Command tvctl is the operator tool for titleview: it exports the rendered
// page as a static file and signs widget state cookies for debugging.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"titleview/internal/config"
)

var cfgPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tvctl",
		Short:         "titleview operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to config file")
	root.AddCommand(newRenderCmd(), newTokenCmd())
	return root
}

// loadConfig reads the config; a missing file falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if cfg != nil && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tvctl:", err)
		os.Exit(1)
	}
}
