package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrettladley/boldrelay/internal/server"
	"github.com/garrettladley/boldrelay/internal/service/webhook"
)

func webhookSignatureCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "webhook-signature [file]",
		Short: "Print the x-bold-signature for a webhook body (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.ReadConfig()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if cfg.Bold.SecretKey == "" {
				return webhook.ErrMissingSecret
			}

			signingMode := cfg.Bold.WebhookSigningMode
			if mode != "" {
				signingMode = webhook.SigningMode(mode)
				if err := signingMode.Validate(); err != nil {
					return err
				}
			}

			body, err := readBody(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			sig, err := webhook.SignBody(body, cfg.Bold.SecretKey, signingMode)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sig)
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "signing mode override: reencoded or raw")

	return cmd
}

func readBody(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return body, nil
}
