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

type holdingsCmd struct {
	log    string
	quotes string
	json   bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list open positions of a transaction log" }
func (*holdingsCmd) Usage() string {
	return `dashctl holdings -log <file> [-quotes <file>] [-json]

  Prints every open position in order of first purchase with its quantity,
  average cost and market value.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.log, "log", "transactions.json", "Path to the transaction log (JSON array).")
	f.StringVar(&c.quotes, "quotes", "", "Path to a JSON object of ticker to quote.")
	f.BoolVar(&c.json, "json", false, "Print holdings as JSON.")
}

func (c *holdingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *holdingsCmd) run(w io.Writer) error {
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
		return writeJSON(w, snap.Holdings)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKER\tQUANTITY\tAVG COST\tPRICE\tVALUE")
	for _, h := range snap.Holdings {
		price := format.Currency(h.ValuationPrice)
		if !h.Quoted {
			price += "*"
		}
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\t%s\n",
			h.Ticker, format.RoundTo(h.Quantity, 8), format.Currency(h.AvgCost), price, format.Currency(h.MarketValue))
	}
	return tw.Flush()
}
