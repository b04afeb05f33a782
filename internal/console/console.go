// Package console implements the interactive enter/edit/quit front-end.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/ledger"
	"github.com/theirongolddev/perftrack/internal/report"
)

// Console drives one interactive session over a ledger.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	ledger *ledger.Ledger
	plan   config.PlanConfig
}

// New returns a console reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, l *ledger.Ledger, plan config.PlanConfig) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		ledger: l,
		plan:   plan,
	}
}

// Run shows progress and loops on the E/M/Q menu until the user quits,
// input ends, or every month of the span is recorded.
func (c *Console) Run() error {
	c.println("\n" + cli.Header(fmt.Sprintf("%d Profit Performance Tracker", c.plan.Year)))
	WriteProgress(c.out, report.Build(c.ledger, c.plan))

	err := c.loop()

	c.println("\nThanks for using perftrack. Goodbye.")
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) loop() error {
	for {
		next := c.ledger.NextMonth(c.plan.StartMonth)
		if next > c.plan.EndMonth {
			c.println("\n" + cli.Success("All months of the year are recorded!"))
			WriteFinalReport(c.out, report.Build(c.ledger, c.plan))
			return nil
		}

		action, err := c.ask(fmt.Sprintf("\nChoose: [E] enter %s data, [M] edit a recorded month, [Q] quit -> ",
			cli.FormatMonth(next)))
		if err != nil {
			return err
		}

		switch strings.ToUpper(action) {
		case "E":
			err = c.enterMonth(next)
		case "M":
			err = c.editMonth()
		case "Q":
			return nil
		default:
			c.println(cli.Error("Invalid choice, enter E, M or Q."))
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) enterMonth(month int) error {
	c.println("\n" + cli.SubHeader("Enter "+cli.FormatMonth(month)+" data"))

	profit, err := c.askProfit(fmt.Sprintf("  Actual profit for %s (in 10k): ", cli.FormatMonth(month)))
	if err != nil {
		return err
	}
	c.ledger.Upsert(month, profit)
	c.println(cli.Success(fmt.Sprintf("   %s updated.", cli.FormatMonth(month))))

	c.save()
	WriteProgress(c.out, report.Build(c.ledger, c.plan))
	return nil
}

func (c *Console) editMonth() error {
	months := c.ledger.Months()
	if len(months) == 0 {
		c.println(cli.Error("No recorded months to edit yet."))
		return nil
	}

	c.println("\n" + cli.SubHeader("Edit a recorded month"))

	var month int
	for {
		answer, err := c.ask(fmt.Sprintf("  Month to edit (%d-%d, blank to cancel): ",
			months[0], months[len(months)-1]))
		if err != nil {
			return err
		}
		if answer == "" {
			return nil
		}
		m, err := strconv.Atoi(answer)
		if err != nil {
			c.println(cli.Error("  Invalid month, enter a number."))
			continue
		}
		if _, ok := c.ledger.Record(m); !ok {
			c.println(cli.Error(fmt.Sprintf("  No data recorded for month %d.", m)))
			continue
		}
		month = m
		break
	}

	rec, _ := c.ledger.Record(month)
	c.println(cli.Info(fmt.Sprintf("  Current profit for %s: %s (10k)",
		cli.FormatMonth(month), cli.FormatTenThousands(rec.ActualProfit))))

	profit, err := c.askProfit(fmt.Sprintf("  New profit for %s (in 10k): ", cli.FormatMonth(month)))
	if err != nil {
		return err
	}
	c.ledger.Upsert(month, profit)
	c.println(cli.Success(fmt.Sprintf("   %s updated.", cli.FormatMonth(month))))

	c.println(cli.Info("  Recalculating the year..."))
	if c.save() {
		c.println(cli.Success("  Change saved."))
	}
	WriteProgress(c.out, report.Build(c.ledger, c.plan))
	return nil
}

// save persists the ledger. A failure is reported and the session goes on
// with the in-memory records.
func (c *Console) save() bool {
	if err := c.ledger.Save(); err != nil {
		c.println(cli.Error(fmt.Sprintf("Could not save data: %v", err)))
		return false
	}
	return true
}

func (c *Console) askProfit(prompt string) (decimal.Decimal, error) {
	for {
		answer, err := c.ask(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		profit, err := cli.ParseTenThousands(answer)
		if err == nil {
			return profit, nil
		}
		c.println(cli.Error("   Invalid input, enter a number (e.g. 19.5, or -2.5 for a loss)."))
	}
}

// ask prints prompt and returns the trimmed answer. io.EOF means input is closed.
func (c *Console) ask(prompt string) (string, error) {
	_, _ = fmt.Fprint(c.out, cli.Prompt(prompt))
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}
