// Package export writes tabular snapshots of the task collection.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/task"
)

// Format identifies an export file type.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

const validFormats = "csv, pdf"

// Header is the column row every export starts with.
//
//nolint:gochecknoglobals // fixed column layout shared by all writers
var Header = []string{"task", "due date", "priority", "status"}

// Writer renders tasks, in the order given, to w.
type Writer interface {
	Write(w io.Writer, tasks []task.Task) error
}

// ParseFormat validates a user-supplied format. Empty input returns "".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", todoerrors.InvalidFormatError{Value: s, Valid: validFormats}
	}
}

// FormatForPath picks PDF for .pdf destinations and CSV for everything else.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF
	}
	return FormatCSV
}

// New returns the writer for format.
func New(format Format) (Writer, error) {
	switch format {
	case FormatCSV:
		return CSVWriter{}, nil
	case FormatPDF:
		return PDFWriter{Title: "Tasks"}, nil
	default:
		return nil, todoerrors.InvalidFormatError{Value: string(format), Valid: validFormats}
	}
}

// Row returns the export columns for a single task.
func Row(t task.Task) []string {
	return []string{t.Description, t.Due(), string(t.Priority), t.Status()}
}

// ToFile creates or truncates path and writes tasks to it.
func ToFile(path string, wr Writer, tasks []task.Task) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return wr.Write(f, tasks)
}

// CSVWriter writes comma-separated UTF-8 text.
type CSVWriter struct{}

// Write implements Writer.
func (CSVWriter) Write(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write(Row(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PDFWriter renders the same table as a PDF report.
type PDFWriter struct {
	Title string
}

//nolint:gochecknoglobals // column widths in mm, summing to the A4 text width
var pdfColumnWidths = []float64{90, 35, 30, 35}

// Write implements Writer.
func (p PDFWriter) Write(w io.Writer, tasks []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(p.Title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	for i, h := range Header {
		pdf.CellFormat(pdfColumnWidths[i], 7, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		for i, col := range Row(t) {
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(col), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
