package formatter

import (
	"fmt"
	"strings"
)

// SummaryFormatter prints an at-a-glance report digest instead of the full
// fight list.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(view ReportView) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Report %s", view.Code)
	if view.Title != "" {
		fmt.Printf(": %s", view.Title)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if len(view.Rows) == 0 {
		fmt.Println("No boss fights in this report")
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	fmt.Printf("Duration: %s\n", view.Duration)
	fmt.Printf("Pulls:    %d (%d kills, %d wipes)\n", len(view.Rows), view.Kills, view.Wipes)
	fmt.Printf("First:    %s at %s\n", view.Rows[0].Boss, view.Rows[0].Start)
	last := view.Rows[len(view.Rows)-1]
	fmt.Printf("Last:     %s ending %s (%s)\n", last.Boss, last.End, last.Result)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	return nil
}
