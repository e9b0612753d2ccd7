// Package formatter renders a report's fight list for the command line in
// table, CSV, JSON and summary form.
package formatter

import (
	"fmt"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	"github.com/raidsync/go-raid-sync/internal/util"
)

// FightRow is one fight prepared for output. Times are offsets from the log
// start, already formatted.
type FightRow struct {
	ID       int    `json:"id"`
	Boss     string `json:"boss"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
	Result   string `json:"result"`
}

// ReportView is a report flattened for output
type ReportView struct {
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Duration string     `json:"duration"`
	Kills    int        `json:"kills"`
	Wipes    int        `json:"wipes"`
	Rows     []FightRow `json:"fights"`
}

// Formatter renders a report view to stdout
type Formatter interface {
	Format(view ReportView) error
}

// NewReportView flattens a report in its current fight order
func NewReportView(report *model.Report) ReportView {
	view := ReportView{
		Code:     report.Code,
		Title:    report.Title,
		Duration: util.FormatClock(report.DurationSec()),
	}

	for _, f := range report.Fights {
		result := "wipe"
		if f.Kill {
			result = "kill"
			view.Kills++
		} else {
			view.Wipes++
		}
		view.Rows = append(view.Rows, FightRow{
			ID:       f.ID,
			Boss:     f.Name,
			Start:    util.FormatClock(f.StartSec()),
			End:      util.FormatClock(f.EndSec()),
			Duration: util.FormatClock(f.DurationSec()),
			Result:   result,
		})
	}
	return view
}

// ForOutput selects a formatter by output name
func ForOutput(name string) (Formatter, error) {
	switch name {
	case "", "table":
		return NewTableFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}
