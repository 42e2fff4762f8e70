// Package cli implements pricectl, an operator tool for checking prices
// with the same policy the API uses.
package cli

import (
	"fmt"
	"strconv"

	"soccerspot/internal/config"
	"soccerspot/internal/pricing"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the pricectl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pricectl",
		Short:         "Inspect public prices, owner payouts and promotion impact",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newQuoteCmd(), newNetCmd(), newImpactCmd(), newTableCmd())
	return root
}

func loadConverter() (*pricing.Converter, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return pricing.NewConverter(cfg.Pricing)
}

func parseMoney(arg string) (pricing.Money, error) {
	v, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: expected whole francs", arg)
	}
	return pricing.Money(v), nil
}
