package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/format"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

type valueCmd struct {
	log    string
	quotes string
	json   bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value a transaction log against a quote snapshot" }
func (*valueCmd) Usage() string {
	return `dashctl value -log <file> [-quotes <file>] [-json]

  Replays the log and prints cash, holdings value, total value and P&L.
  Tickers missing from the quotes file are valued at their average cost.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.log, "log", "transactions.json", "Path to the transaction log (JSON array).")
	f.StringVar(&c.quotes, "quotes", "", "Path to a JSON object of ticker to {currentPrice, dailyChange, name}.")
	f.BoolVar(&c.json, "json", false, "Print the full snapshot as JSON.")
}

func (c *valueCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *valueCmd) run(w io.Writer) error {
	log, err := readLog(c.log)
	if err != nil {
		return err
	}
	quotes, err := readQuotes(c.quotes)
	if err != nil {
		return err
	}
	snap, err := valuation.ValuePortfolio(log, quotes)
	if err != nil {
		return err
	}
	if c.json {
		return writeJSON(w, snap)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Cash\t%s\n", format.Currency(snap.CashBalance))
	fmt.Fprintf(tw, "Holdings\t%s\n", format.Currency(snap.TotalHoldingsValue))
	fmt.Fprintf(tw, "Invested\t%s\n", format.Currency(snap.TotalInvestmentCost))
	fmt.Fprintf(tw, "Total\t%s\n", format.Currency(snap.TotalPortfolioValue))
	fmt.Fprintf(tw, "P&L\t%s (%s)\n",
		format.SignedCurrency(snap.OverallProfitLoss),
		format.SignedPercentage(snap.OverallProfitLossPercentage))
	return tw.Flush()
}
