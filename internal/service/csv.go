package service

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
)

// utf8BOM makes spreadsheet apps detect the encoding of accented labels.
const utf8BOM = "\uFEFF"

// EscribirCSV writes the report as semicolon-separated values: BOM, a header
// with the first row's keys, then one record per row.
func EscribirCSV(w io.Writer, r model.Reporte) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	columnas := r.Columnas()
	if err := cw.Write(columnas); err != nil {
		return err
	}
	for _, fila := range celdas(r) {
		if err := cw.Write(fila); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LeerCSV parses a file produced by EscribirCSV back into header and records.
func LeerCSV(r io.Reader) ([]string, [][]string, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	cr.Comma = ';'
	registros, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(registros) == 0 {
		return nil, nil, nil
	}
	return registros[0], registros[1:], nil
}

// celdas renders every row with the header's column order. Keys missing in a
// row become empty cells.
func celdas(r model.Reporte) [][]string {
	columnas := r.Columnas()
	out := make([][]string, 0, len(r.Filas))
	for _, f := range r.Filas {
		fila := make([]string, len(columnas))
		for i, k := range columnas {
			fila[i] = Celda(f.Valores[k])
		}
		out = append(out, fila)
	}
	return out
}

// Celda formats one value for export: nil is empty, nested values are JSON.
func Celda(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	case map[string]any, []any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return fmt.Sprint(x)
		}
		return string(bytes.TrimRight(buf.Bytes(), "\n"))
	default:
		return fmt.Sprint(x)
	}
}
