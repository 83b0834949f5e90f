package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"titleview/internal/config"
	"titleview/internal/logging"
	"titleview/internal/ssr"
	"titleview/internal/view"
	"titleview/internal/web"
)

type renderOptions struct {
	out     string
	name    string
	setName bool
	number  int
	setNum  bool
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page once and write it as static HTML",
		Example: `  tvctl render --name Alice --n 5
  tvctl render --out dist/index.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			opts.setName = cmd.Flags().Changed("name")
			opts.setNum = cmd.Flags().Changed("n")

			var buf bytes.Buffer
			if err := renderPage(&buf, cmd.ErrOrStderr(), cfg, opts); err != nil {
				return err
			}
			if opts.out == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.MkdirAll(filepath.Dir(opts.out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "ok: wrote %s (%d bytes)\n", opts.out, buf.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.name, "name", "", "name shown in the title (default: app.name)")
	cmd.Flags().IntVar(&opts.number, "n", 0, "initial counter value (default: app.initial_number)")
	return cmd
}

// renderPage writes the full page for the configured props, with flag
// overrides, to w. Render diagnostics go to logOut.
func renderPage(w, logOut io.Writer, cfg *config.Config, opts renderOptions) error {
	p := view.Props{Name: cfg.App.Name, InitialNumber: cfg.App.InitialNumber}
	if opts.setName {
		p.Name = opts.name
	}
	if opts.setNum {
		p.InitialNumber = opts.number
	}

	l := logging.New(logging.Options{Level: cfg.Logging.Level, Format: "text", Output: logOut})
	tree := ssr.NewApp(p, nil, l, cfg.LogRenders())

	rend, err := web.NewRenderer()
	if err != nil {
		return err
	}
	data, err := web.NewPageData(cfg.App.Title, tree.Render(), p)
	if err != nil {
		return err
	}
	return rend.Render(w, "app", data)
}
