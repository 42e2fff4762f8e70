package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"soccerspot/internal/pricing"

	"github.com/spf13/cobra"
)

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote NET",
		Short: "Public price and commission for an owner net price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := parseMoney(args[0])
			if err != nil {
				return err
			}
			conv, err := loadConverter()
			if err != nil {
				return err
			}

			q := conv.Quote(net)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "net:        %d\n", q.NetOwnerAmount)
			fmt.Fprintf(out, "public:     %d\n", q.PublicAmount)
			fmt.Fprintf(out, "commission: %d\n", q.CommissionAmount)
			return nil
		},
	}
}

func newNetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "net PUBLIC",
		Short: "Owner net price recovered from a public price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			public, err := parseMoney(args[0])
			if err != nil {
				return err
			}
			conv, err := loadConverter()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "net: %d\n", conv.ToNetPrice(public))
			return nil
		},
	}
}

func newImpactCmd() *cobra.Command {
	var percent, fixed float64

	cmd := &cobra.Command{
		Use:   "impact NET",
		Short: "Show how a promotion changes prices for an owner net price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := parseMoney(args[0])
			if err != nil {
				return err
			}

			percentSet, fixedSet := cmd.Flags().Changed("percent"), cmd.Flags().Changed("fixed")
			var d pricing.Discount
			switch {
			case percentSet && fixedSet:
				return errors.New("use either --percent or --fixed, not both")
			case percentSet:
				d = pricing.Discount{Kind: pricing.DiscountPercent, Value: percent}
			case fixedSet:
				d = pricing.Discount{Kind: pricing.DiscountFixed, Value: fixed}
			default:
				return errors.New("one of --percent or --fixed is required")
			}

			conv, err := loadConverter()
			if err != nil {
				return err
			}
			impact := pricing.NewImpactCalculator(conv).ComputeImpact(net, d.Kind, d.Value)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tbefore\tafter")
			fmt.Fprintf(w, "owner net\t%d\t%d\n", impact.OwnerNetBefore, impact.OwnerNetAfter)
			fmt.Fprintf(w, "public\t%d\t%d\n", impact.PublicPriceBefore, impact.PublicPriceAfter)
			fmt.Fprintf(w, "commission\t%d\t%d\n", impact.CommissionBefore, impact.CommissionAfter)
			fmt.Fprintf(w, "owner loss\t%d\t\n", impact.OwnerLoss)
			fmt.Fprintf(w, "customer savings\t%d\t\n", impact.CustomerSavings)
			fmt.Fprintf(w, "platform delta\t%d\t\n", impact.PlatformDelta)
			return w.Flush()
		},
	}

	cmd.Flags().Float64Var(&percent, "percent", 0, "percentage discount, 0-100")
	cmd.Flags().Float64Var(&fixed, "fixed", 0, "fixed discount in francs")
	return cmd
}

func newTableCmd() *cobra.Command {
	var from, to, step int64

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print a grid of net prices and their public prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step <= 0 || to < from {
				return errors.New("need --step > 0 and --to >= --from")
			}
			conv, err := loadConverter()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "net\tpublic\tcommission\t")
			for net := from; net <= to; net += step {
				q := conv.Quote(pricing.Money(net))
				fmt.Fprintf(w, "%d\t%d\t%d\t\n", q.NetOwnerAmount, q.PublicAmount, q.CommissionAmount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&from, "from", 5000, "first net price")
	cmd.Flags().Int64Var(&to, "to", 50000, "last net price")
	cmd.Flags().Int64Var(&step, "step", 5000, "increment between rows")
	return cmd
}
