package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/report"
)

var templateFuncs = template.FuncMap{
	"amount":   cli.FormatAmount,
	"signed":   cli.FormatSignedAmount,
	"month":    cli.FormatMonth,
	"negative": func(d decimal.Decimal) bool { return d.Round(2).IsNegative() },
}

type monthOption struct {
	Value    int
	Label    string
	Selected bool
}

type flash struct {
	Kind string // "success" or "error"
	Text string
}

type dashboardView struct {
	Report report.Report
	Months []monthOption
	Flash  *flash
	Labels map[string]string
}

var labels = map[string]string{
	"Cumulative":  report.LabelCumulative,
	"ToTarget":    report.LabelToTarget,
	"Deductions":  report.LabelDeductions,
	"Clawback":    report.LabelClawback,
	"Surplus":     report.LabelSurplus,
	"TotalBonus":  report.LabelTotalBonus,
	"Eligible":    report.MsgEligible,
	"NotEligible": report.MsgNotEligible,
	"Forfeited":   report.MsgForfeitedLabel,
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rep := s.snapshot()

	view := dashboardView{
		Report: rep,
		Flash:  flashFromQuery(r),
		Labels: labels,
	}
	for _, m := range s.plan.Months() {
		view.Months = append(view.Months, monthOption{
			Value:    m,
			Label:    cli.FormatMonth(m),
			Selected: m == rep.DefaultMonth,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		s.log.Error().Err(err).Msg("dashboard template execution failed")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func flashFromQuery(r *http.Request) *flash {
	q := r.URL.Query()
	if saved := q.Get("saved"); saved != "" {
		if m, err := strconv.Atoi(saved); err == nil {
			return &flash{Kind: "success", Text: fmt.Sprintf("%s saved.", cli.FormatMonth(m))}
		}
	}
	switch q.Get("error") {
	case "invalid":
		return &flash{Kind: "error", Text: "Enter a month and a numeric profit."}
	case "persist":
		return &flash{Kind: "error", Text: "Could not write the data file. The change is kept for this session; save again to retry."}
	}
	return nil
}

func (s *Server) handleSaveRecord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.metrics.saves.WithLabelValues("invalid").Inc()
		http.Redirect(w, r, "/?error=invalid", http.StatusSeeOther)
		return
	}

	month, err := strconv.Atoi(r.PostFormValue("month"))
	if err != nil {
		s.metrics.saves.WithLabelValues("invalid").Inc()
		http.Redirect(w, r, "/?error=invalid", http.StatusSeeOther)
		return
	}
	profit, err := cli.ParseTenThousands(r.PostFormValue("profit"))
	if err != nil {
		s.metrics.saves.WithLabelValues("invalid").Inc()
		http.Redirect(w, r, "/?error=invalid", http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	rec := s.ledger.Upsert(month, profit)
	saveErr := s.ledger.Save()
	s.mu.Unlock()

	if saveErr != nil {
		s.metrics.saves.WithLabelValues("failed").Inc()
		s.log.Error().Err(saveErr).Int("month", month).Msg("saving record failed")
		http.Redirect(w, r, "/?error=persist", http.StatusSeeOther)
		return
	}

	s.metrics.saves.WithLabelValues("ok").Inc()
	s.log.Info().
		Int("month", rec.Month).
		Str("actual_profit", rec.ActualProfit.String()).
		Str("performance_diff", rec.PerformanceDiff.String()).
		Msg("record saved")
	http.Redirect(w, r, "/?saved="+strconv.Itoa(month), http.StatusSeeOther)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snapshot()); err != nil {
		s.log.Error().Err(err).Msg("encoding summary failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
