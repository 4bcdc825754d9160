package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/calculator"
)

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Print every member's balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := loadSnapshot(cmd.InOrStdin())
			if err != nil {
				return err
			}
			report, err := calculator.ComputeBalances(group, memberID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), report, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "MEMBER\tBALANCE")
				for _, b := range report.Balances {
					marker := ""
					if b.MemberID == memberID {
						marker = " *"
					}
					fmt.Fprintf(tw, "%s%s\t%s\n", b.MemberID, marker, money(b.BalanceCents))
				}
				fmt.Fprintf(tw, "TOTAL SPENT\t%s\n", money(report.TotalCents))
			})
		},
	}
}

func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Print the suggested transfers that clear every balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := loadSnapshot(cmd.InOrStdin())
			if err != nil {
				return err
			}
			report, err := calculator.ComputeBalances(group, memberID)
			if err != nil {
				return err
			}
			settlements := calculator.MinimizeSettlements(report.Balances)
			if memberID != "" {
				settlements = involving(settlements, memberID)
			}
			return render(cmd.OutOrStdout(), settlements, func(tw *tabwriter.Writer) {
				if len(settlements) == 0 {
					fmt.Fprintln(tw, "Nothing to settle.")
					return
				}
				fmt.Fprintln(tw, "FROM\tTO\tAMOUNT")
				for _, s := range settlements {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", s.From, s.To, money(s.AmountCents))
				}
			})
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print spend per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := loadSnapshot(cmd.InOrStdin())
			if err != nil {
				return err
			}
			categories, err := calculator.SummarizeCategories(group.Expenses)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), categories, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "CATEGORY\tTOTAL\tSHARE")
				for _, c := range categories {
					fmt.Fprintf(tw, "%s\t%s\t%.2f%%\n", c.Category, money(c.TotalCents), c.Percentage)
				}
			})
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Print one member's view of the group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if memberID == "" {
				return errors.New("--member is required")
			}
			group, err := loadSnapshot(cmd.InOrStdin())
			if err != nil {
				return err
			}
			analysis, err := calculator.AnalyzeGroup(group, memberID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), analysis, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Balance\t%s\n", money(analysis.MyBalanceCents))
				fmt.Fprintf(tw, "Group spent\t%s\n", money(analysis.TotalSpentCents))
				fmt.Fprintf(tw, "You paid\t%s\n", money(analysis.MyTotalSpentCents))
				for _, d := range analysis.OwedBy {
					fmt.Fprintf(tw, "%s owes you\t%s\n", d.MemberID, money(d.AmountCents))
				}
				for _, d := range analysis.OweTo {
					fmt.Fprintf(tw, "You owe %s\t%s\n", d.MemberID, money(d.AmountCents))
				}
			})
		},
	}
}

func involving(settlements []calculator.Settlement, id string) []calculator.Settlement {
	var out []calculator.Settlement
	for _, s := range settlements {
		if s.From == id || s.To == id {
			out = append(out, s)
		}
	}
	return out
}
