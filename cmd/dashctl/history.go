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

type historyCmd struct {
	log    string
	quotes string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print the value of a log at the end of each transaction date" }
func (*historyCmd) Usage() string {
	return `dashctl history -log <file> [-quotes <file>]
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.log, "log", "transactions.json", "Path to the transaction log (JSON array).")
	f.StringVar(&c.quotes, "quotes", "", "Path to a JSON object of ticker to quote.")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *historyCmd) run(w io.Writer) error {
	log, err := readLog(c.log)
	if err != nil {
		return err
	}
	quotes, err := readQuotes(c.quotes)
	if err != nil {
		return err
	}
	points, err := valuation.History(log, quotes)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCASH\tHOLDINGS\tTOTAL")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			p.Date, format.Currency(p.CashBalance), format.Currency(p.TotalHoldingsValue), format.Currency(p.TotalPortfolioValue))
	}
	return tw.Flush()
}
