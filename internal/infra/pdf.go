package infra

// pdf.go: report export using go-pdf/fpdf. Replaces the browser print window
// of the reports dashboard with a downloadable A4 landscape table:
//   - title and date range header
//   - one column per report key, widths split evenly
//   - zebra rows, repeated header on page breaks

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// TablaPDF is the content of one exported report.
type TablaPDF struct {
	Titulo    string
	Subtitulo string
	Columnas  []string
	Filas     [][]string
	Generado  time.Time
}

const (
	pdfMargin    = 10.0
	pdfRowHeight = 6.0
	pdfMaxChars  = 40
)

// WritePDF renders t to w.
func WritePDF(w io.Writer, t TablaPDF) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252 for accented labels

	pdf.SetFooterFunc(func() {
		pdf.SetY(-8)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(t.Titulo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if t.Subtitulo != "" {
		pdf.CellFormat(contentW, 5, tr(t.Subtitulo), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Generado: "+t.Generado.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(t.Columnas) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, tr("Sin datos para el período seleccionado"), "", 1, "L", false, 0, "")
		return output(pdf, w)
	}

	colW := contentW / float64(len(t.Columnas))
	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range t.Columnas {
			pdf.CellFormat(colW, pdfRowHeight, tr(truncar(c)), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	_, pageH := pdf.GetPageSize()
	for i, fila := range t.Filas {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin-8 {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(247, 247, 247)
		for j := range t.Columnas {
			v := ""
			if j < len(fila) {
				v = fila[j]
			}
			pdf.CellFormat(colW, pdfRowHeight, tr(truncar(v)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	return output(pdf, w)
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return nil
}

// RenderPDF is WritePDF into memory.
func RenderPDF(t TablaPDF) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncar(s string) string {
	r := []rune(s)
	if len(r) > pdfMaxChars {
		return string(r[:pdfMaxChars-1]) + "…"
	}
	return s
}
