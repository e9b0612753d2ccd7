package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(view ReportView) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{"ID", "Boss", "Start", "End", "Duration", "Result"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range view.Rows {
		record := []string{
			fmt.Sprintf("%d", row.ID),
			row.Boss,
			row.Start,
			row.End,
			row.Duration,
			row.Result,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
