// Package tui provides the interactive Bubble Tea dashboard for perftrack.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/ledger"
	"github.com/theirongolddev/perftrack/internal/report"
	"github.com/theirongolddev/perftrack/internal/tui/components"
)

// entryValues is bound to the huh form fields. It lives behind a pointer
// because Bubble Tea copies App on every Update.
type entryValues struct {
	month  int
	profit string
}

// App is the root Bubble Tea model.
type App struct {
	ledger *ledger.Ledger
	plan   config.PlanConfig
	rep    report.Report

	form  *huh.Form
	entry *entryValues

	help   help.Model
	status components.Status

	width  int
	height int
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	formCardWidth    = 36
	progressBarWidth = 24
)

// NewApp creates the dashboard over l. Every saved entry is written through
// to l's data file.
func NewApp(l *ledger.Ledger, plan config.PlanConfig) App {
	a := App{
		ledger: l,
		plan:   plan,
		help:   help.New(),
	}
	a.rep = report.Build(l, plan)
	a.resetForm()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.form.Init()
}

func (a *App) resetForm() {
	a.entry = &entryValues{month: a.rep.DefaultMonth}
	a.form = newEntryForm(a.entry, a.plan)
	if a.width > 0 {
		a.form = a.form.WithWidth(formCardWidth - 4)
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.form = a.form.WithWidth(formCardWidth - 4)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Reset):
			a.status = components.Status{}
			a.resetForm()
			return a, a.form.Init()
		}
	}

	return a.updateForm(msg)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.commit(a.entry.month, a.entry.profit)
		a.resetForm()
		return a, a.form.Init()
	case huh.StateAborted:
		a.resetForm()
		return a, a.form.Init()
	}

	return a, cmd
}

// commit upserts one month and writes the ledger. A failed write keeps the
// record in memory and reports the error on the status bar.
func (a *App) commit(month int, profit string) {
	amount, err := cli.ParseTenThousands(profit)
	if err != nil {
		a.status = components.Status{Text: "Enter a numeric profit.", Error: true}
		return
	}

	a.ledger.Upsert(month, amount)
	if err := a.ledger.Save(); err != nil {
		a.status = components.Status{Text: fmt.Sprintf("Could not save: %v", err), Error: true}
	} else {
		a.status = components.Status{Text: cli.FormatMonth(month) + " saved."}
	}
	a.rep = report.Build(a.ledger, a.plan)
}

func newEntryForm(v *entryValues, plan config.PlanConfig) *huh.Form {
	months := plan.Months()
	opts := make([]huh.Option[int], 0, len(months))
	for _, m := range months {
		opts = append(opts, huh.NewOption(cli.FormatMonth(m), m))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Month").
				Options(opts...).
				Value(&v.month),
			huh.NewInput().
				Title("Profit (in 10k)").
				Placeholder("19.5, or -2.5 for a loss").
				Value(&v.profit).
				Validate(func(s string) error {
					_, err := cli.ParseTenThousands(s)
					return err
				}),
		),
	).WithShowHelp(false)
}
