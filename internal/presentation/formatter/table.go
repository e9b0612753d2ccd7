package formatter

import (
	"fmt"
	"strings"

	"github.com/raidsync/go-raid-sync/internal/presentation/layout"
)

type TableFormatter struct {
	headers []string
	sizer   *layout.Sizer
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"#", "Boss", "Start", "End", "Duration", "Result"},
		sizer:   layout.DetectSizer(),
	}
}

func (f *TableFormatter) Format(view ReportView) error {
	widths := f.calculateColumnWidths(view)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")

	for _, row := range view.Rows {
		f.printRow([]string{
			fmt.Sprintf("%d", row.ID),
			f.sizer.Truncate(row.Boss, widths[1]),
			row.Start,
			row.End,
			row.Duration,
			row.Result,
		}, widths)
	}

	f.printBorder(widths, "middle")
	f.printRow([]string{
		"",
		fmt.Sprintf("%d pulls", len(view.Rows)),
		"",
		"",
		view.Duration,
		fmt.Sprintf("%dK/%dW", view.Kills, view.Wipes),
	}, widths)
	f.printBorder(widths, "bottom")

	return nil
}

// calculateColumnWidths sizes each column to its widest cell, capping the
// boss column so wide names cannot blow past the terminal
func (f *TableFormatter) calculateColumnWidths(view ReportView) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = f.sizer.DisplayWidth(header)
	}

	grow := func(i int, value string) {
		if w := f.sizer.DisplayWidth(value); w > widths[i] {
			widths[i] = w
		}
	}

	for _, row := range view.Rows {
		grow(0, fmt.Sprintf("%d", row.ID))
		grow(1, row.Boss)
		grow(2, row.Start)
		grow(3, row.End)
		grow(4, row.Duration)
		grow(5, row.Result)
	}
	grow(1, fmt.Sprintf("%d pulls", len(view.Rows)))
	grow(4, view.Duration)
	grow(5, fmt.Sprintf("%dK/%dW", view.Kills, view.Wipes))

	// Everything but the boss column is narrow; give the boss column the
	// leftover space at most
	fixed := 0
	for i, w := range widths {
		if i != 1 {
			fixed += w + 3
		}
	}
	if maxBoss := f.sizer.ContentWidth() - fixed - 3; widths[1] > maxBoss && maxBoss >= 8 {
		widths[1] = maxBoss
	}

	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		// Boss and result are left-aligned, times are right-aligned
		leftAlign := i == 1 || i == 5
		fmt.Printf(" %s │", f.sizer.PadString(value, widths[i], leftAlign))
	}
	fmt.Println()
}
