package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/internal/crypto"
	"github.com/screa/eth-vanity/internal/store"
	"github.com/screa/eth-vanity/pkg/matcher"
	"github.com/screa/eth-vanity/pkg/types"
)

var errVerifyFailed = errors.New("some records failed verification")

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file]",
		Short: "Check that every saved private key derives its recorded address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultOutput
			if len(args) == 1 {
				path = args[0]
			}

			records, err := store.ReadFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for i, rec := range records {
				if err := verifyRecord(rec); err != nil {
					failed++
					fmt.Fprintf(out, "❌ #%d %s: %v\n", i+1, rec.Match.PrefixedAddress(), err)
					continue
				}
				fmt.Fprintf(out, "✅ #%d %s '%c' x %d\n", i+1, rec.Match.PrefixedAddress(), rec.Match.Digit, rec.Match.RunLength)
			}
			fmt.Fprintf(out, "%d records, %d failed\n", len(records), failed)

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errVerifyFailed, failed, len(records))
			}
			return nil
		},
	}
}

func verifyRecord(rec types.Record) error {
	if err := crypto.Verify(rec.Match); err != nil {
		return err
	}

	digit, run, ok := matcher.Match([]byte(rec.Match.Address), rec.Match.RunLength)
	if !ok || digit != rec.Match.Digit || run != rec.Match.RunLength {
		return fmt.Errorf("address does not end in '%c' x %d", rec.Match.Digit, rec.Match.RunLength)
	}
	return nil
}
