package shopping

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Format selects the document type of a rendered shopping list.
type Format string

const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported values.
var ErrUnknownFormat = errors.New("unknown shopping list format")

// baseFilename is the download name without extension.
const baseFilename = "shopping_cart"

// ParseFormat maps a query value to a Format. Empty input selects plain text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", ErrUnknownFormat
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Filename returns the fixed attachment name for f.
func (f Format) Filename() string { return baseFilename + "." + string(f) }

// Render writes items to w in format f.
func Render(w io.Writer, f Format, items []Item) error {
	switch f {
	case FormatText:
		return renderText(w, items)
	case FormatCSV:
		return renderCSV(w, items)
	case FormatPDF:
		return renderPDF(w, items)
	default:
		return ErrUnknownFormat
	}
}

func line(it Item) string {
	return fmt.Sprintf("%s (%s) - %d", it.Name, it.MeasurementUnit, it.Amount)
}

func renderText(w io.Writer, items []Item) error {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(line(it))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "amount", "measurement_unit"}); err != nil {
		return err
	}
	for _, it := range items {
		rec := []string{it.Name, strconv.FormatInt(it.Amount, 10), it.MeasurementUnit}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DejaVu covers Latin and Cyrillic; the core PDF fonts are cp1252 only.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

const pdfFont = "DejaVu"

// renderPDF lays out one line per item on A4 pages; fpdf breaks pages
// automatically.
func renderPDF(w io.Writer, items []Item) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)

	pdf.SetTitle("Shopping list", true)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 12, "Shopping list", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "", 12)
	for _, it := range items {
		pdf.CellFormat(0, 8, line(it), "", 1, "L", false, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
