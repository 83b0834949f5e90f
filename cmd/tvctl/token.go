package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"titleview/internal/session"
	"titleview/internal/view"
)

func newTokenCmd() *cobra.Command {
	var (
		key          string
		value        int
		seed         int
		promptSecret bool
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a widget state cookie value",
		Example: `  tvctl token --value 42
  tvctl token --key app/counter --value 7 --seed 5 --prompt-secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			secret := cfg.Security.SessionSecret
			if promptSecret {
				if secret, err = readSecret("Session secret: "); err != nil {
					return err
				}
			}
			codec, err := session.NewCodec(secret, cfg.SessionTTL())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.App.InitialNumber
			}
			tok, err := codec.Encode(view.States{key: {Value: value, Seed: seed}})
			if err != nil {
				return fmt.Errorf("sign: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", session.CookieName, tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", view.CounterKey, "widget key")
	cmd.Flags().IntVar(&value, "value", 0, "widget state")
	cmd.Flags().IntVar(&seed, "seed", 0, "initial number the state belongs to (default app.initial_number)")
	cmd.Flags().BoolVar(&promptSecret, "prompt-secret", false, "read the secret from the terminal instead of the config")
	return cmd
}

func readSecret(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", errors.New("--prompt-secret needs an interactive terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // newline after input
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
