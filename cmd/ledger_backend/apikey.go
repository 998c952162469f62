package main

import (
	"fmt"

	"github.com/SscSPs/payables_ledger/internal/utils"
	"github.com/spf13/cobra"
)

func newAPIKeyCommand() *cobra.Command {
	var keyBytes int
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Generate a service API key and the hash to put in API_KEY_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := utils.GenerateSecureRandomString(keyBytes)
			if err != nil {
				return err
			}
			hash, err := utils.HashAPIKey(key)
			if err != nil {
				return fmt.Errorf("failed to hash API key: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "API key:      %s\n", key)
			fmt.Fprintf(out, "API_KEY_HASH: %s\n", hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&keyBytes, "bytes", 32, "random bytes in the key before hex encoding")
	return cmd
}
