// Package commands implements settlectl, an offline front-end to the balance
// engine and a token minting tool for local development.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/pkg/logging"
)

var (
	groupFile  string
	memberID   string
	jsonOutput bool
	logLevel   string
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "settlectl",
		Short:        "Compute group balances and settlements from a snapshot file",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWith(logLevel, "text")
		},
	}

	root.PersistentFlags().StringVarP(&groupFile, "file", "f", "", "group snapshot JSON file (- for stdin)")
	root.PersistentFlags().StringVarP(&memberID, "member", "m", "", "member whose perspective to show")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")

	root.AddCommand(balancesCmd(), settleCmd(), categoriesCmd(), analyzeCmd(), tokenCmd())
	return root
}

// render prints v as indented JSON when --json is set, otherwise calls table.
func render(w io.Writer, v any, table func(tw *tabwriter.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
