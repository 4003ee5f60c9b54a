package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

type recordCmd struct {
	log      string
	kind     string
	ticker   string
	quantity float64
	price    float64
	amount   float64
	date     string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "append a validated transaction to a log file" }
func (*recordCmd) Usage() string {
	return `dashctl record -log <file> -type <deposit|withdrawal|buy|sell> [flags]

  deposit, withdrawal:  -amount <positive>
  buy, sell:            -ticker <symbol> -quantity <n> -price <p>

  The candidate is checked against a replay of the log: overdrafts, oversells
  and entries dated before the last one are rejected and the file is left
  untouched. -date defaults to today.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.log, "log", "transactions.json", "Path to the transaction log (JSON array).")
	f.StringVar(&c.kind, "type", "", "Transaction type: deposit, withdrawal, buy or sell.")
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol for buys and sells.")
	f.Float64Var(&c.quantity, "quantity", 0, "Units traded.")
	f.Float64Var(&c.price, "price", 0, "Price per unit.")
	f.Float64Var(&c.amount, "amount", 0, "Cash amount for deposits and withdrawals.")
	f.StringVar(&c.date, "date", "", "Transaction date, YYYY-MM-DD or RFC3339.")
}

func (c *recordCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *recordCmd) run(w io.Writer) error {
	candidate, err := c.candidate()
	if err != nil {
		return err
	}
	log, err := readLog(c.log)
	if err != nil {
		return err
	}
	next, err := valuation.RecordTransaction(log, candidate)
	if err != nil {
		return err
	}
	if err := writeLog(c.log, next); err != nil {
		return err
	}
	return writeJSON(w, next[len(next)-1])
}

func (c *recordCmd) candidate() (valuation.Transaction, error) {
	kind, err := valuation.ParseKind(c.kind)
	if err != nil {
		return valuation.Transaction{}, err
	}

	var date time.Time
	if c.date != "" {
		if date, err = valuation.ParseDate(c.date); err != nil {
			return valuation.Transaction{}, err
		}
	}

	event, err := valuation.NewEvent(kind, c.amount, c.ticker, c.quantity, c.price)
	if err != nil {
		return valuation.Transaction{}, err
	}
	return valuation.Transaction{Date: date, Event: event}, nil
}
