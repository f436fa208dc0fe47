package main

import (
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/boldrelay/internal/server"
	"github.com/garrettladley/boldrelay/internal/service/payment"
	"github.com/garrettladley/boldrelay/internal/xjson"
)

func signCmd() *cobra.Command {
	var (
		reference   string
		amount      string
		currency    string
		userID      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print a signed payment payload using BOLD_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.ReadConfig()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			req := payment.Request{
				Amount:      literal(amount),
				Reference:   reference,
				Description: description,
				Currency:    currency,
				UserID:      literal(userID),
			}

			payload, err := payment.Sign(req, cfg.Bold.SecretKey)
			if err != nil {
				return err
			}

			enc := go_json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "order reference")
	cmd.Flags().StringVar(&amount, "amount", "", "amount exactly as it will be sent to checkout")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default COP)")
	cmd.Flags().StringVar(&userID, "user-id", "", "user id to embed in the reference")
	cmd.Flags().StringVar(&description, "description", "", "order description")
	_ = cmd.MarkFlagRequired("reference")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// literal keeps numeric flags as JSON numbers in the printed payload.
// Anything outside the JSON number grammar is printed as a string.
func literal(s string) payment.Literal {
	if s == "" {
		return payment.Literal{}
	}
	if xjson.IsNumber(s) {
		return payment.NumberLiteral(s)
	}
	return payment.StringLiteral(s)
}
