// Package export renders the task collection for the export boundary.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tasklist/internal/model"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Render produces the task list in the requested format and returns the
// bytes together with the matching content type.
func Render(format string, tasks []model.Task) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		data, err := JSON(tasks)
		return data, "application/json", err
	case FormatCSV:
		data, err := CSV(tasks)
		return data, "text/csv", err
	case FormatPDF:
		data, err := PDF(tasks)
		return data, "application/pdf", err
	default:
		return nil, "", fmt.Errorf("unknown export format %q", format)
	}
}

// JSON renders the tasks as a pretty-printed JSON array.
func JSON(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.MarshalIndent(tasks, "", "  ")
}

func CSV(tasks []model.Task) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"id", "text", "completed", "createdAt"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tasks {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return []byte(b.String()), nil
}

func PDF(tasks []model.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s #%d %s (created %s)", mark, t.ID, t.Text, t.CreatedAt.Format("2006-01-02"))
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
