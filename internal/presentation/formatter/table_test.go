package formatter

import (
	"os"
	"strings"
	"testing"

	"github.com/raidsync/go-raid-sync/internal/core/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Code:    "a1b2c3",
		Title:   "weekly clear",
		StartMS: 1700000000000,
		EndMS:   1700003600000,
		Fights: []model.Fight{
			{ID: 1, Name: "Gatekeeper", StartMS: 600000, EndMS: 660000, Kill: true},
			{ID: 2, Name: "Archon", StartMS: 900000, EndMS: 1200000},
		},
	}
}

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	callErr := fn()

	w.Close()
	os.Stdout = old
	buf := make([]byte, 16384)
	n, _ := r.Read(buf)

	if callErr != nil {
		t.Fatalf("Format() error = %v", callErr)
	}
	return string(buf[:n])
}

func TestNewReportView(t *testing.T) {
	view := NewReportView(sampleReport())

	if view.Kills != 1 || view.Wipes != 1 {
		t.Errorf("Expected 1 kill and 1 wipe, got %d/%d", view.Kills, view.Wipes)
	}
	if view.Duration != "1:00:00" {
		t.Errorf("Expected report duration 1:00:00, got %s", view.Duration)
	}
	if view.Rows[0].Start != "10:00" || view.Rows[0].Duration != "1:00" {
		t.Errorf("Unexpected first row times: %+v", view.Rows[0])
	}
	if view.Rows[1].Result != "wipe" {
		t.Errorf("Expected wipe result, got %s", view.Rows[1].Result)
	}
}

func TestTableFormatterFormat(t *testing.T) {
	view := NewReportView(sampleReport())
	output := captureStdout(t, func() error {
		return NewTableFormatter().Format(view)
	})

	wantInBody := []string{
		"Boss", "Gatekeeper", "Archon",
		"10:00", "11:00", "kill", "wipe",
		"2 pulls", "1K/1W",
	}
	for _, want := range wantInBody {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q.\nGot:\n%s", want, output)
		}
	}
}

func TestTableFormatterEmptyReport(t *testing.T) {
	view := NewReportView(&model.Report{Code: "empty"})
	output := captureStdout(t, func() error {
		return NewTableFormatter().Format(view)
	})

	if !strings.Contains(output, "0 pulls") {
		t.Errorf("Expected empty table footer, got:\n%s", output)
	}
}

func TestCSVFormatterFormat(t *testing.T) {
	view := NewReportView(sampleReport())
	output := captureStdout(t, func() error {
		return NewCSVFormatter().Format(view)
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,Gatekeeper,") {
		t.Errorf("Unexpected first data row: %s", lines[1])
	}
}

func TestJSONFormatterFormat(t *testing.T) {
	view := NewReportView(sampleReport())
	output := captureStdout(t, func() error {
		return NewJSONFormatter().Format(view)
	})

	for _, want := range []string{`"code": "a1b2c3"`, `"boss": "Gatekeeper"`, `"kills": 1`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected JSON output to contain %q.\nGot:\n%s", want, output)
		}
	}
}

func TestForOutput(t *testing.T) {
	for _, name := range []string{"", "table", "csv", "json", "summary"} {
		if _, err := ForOutput(name); err != nil {
			t.Errorf("ForOutput(%q) unexpected error: %v", name, err)
		}
	}
	if _, err := ForOutput("xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
