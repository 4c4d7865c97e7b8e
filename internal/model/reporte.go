package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// TipoReporte names one tab of the reports dashboard.
type TipoReporte string

const (
	ReporteVentas       TipoReporte = "ventas"
	ReporteInventario   TipoReporte = "inventario"
	ReporteBI           TipoReporte = "bi"
	ReporteSesionesCaja TipoReporte = "sesiones-caja"
	ReporteClientes     TipoReporte = "clientes"
)

// TiposReporte lists the dashboard tabs in display order.
var TiposReporte = []TipoReporte{ReporteVentas, ReporteInventario, ReporteBI, ReporteSesionesCaja, ReporteClientes}

func (t TipoReporte) Valid() bool {
	for _, x := range TiposReporte {
		if x == t {
			return true
		}
	}
	return false
}

// FiltroReporte is the filter shared by every tab.
type FiltroReporte struct {
	Inicio     time.Time
	Fin        time.Time
	SucursalID string
}

// Fila is one report row. It keeps the key order of the backend's JSON object
// so exports list columns the way the backend sent them.
type Fila struct {
	Claves  []string
	Valores map[string]any
}

func (f *Fila) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("fila: se esperaba un objeto")
	}
	f.Claves = f.Claves[:0]
	f.Valores = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		clave, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if _, dup := f.Valores[clave]; !dup {
			f.Claves = append(f.Claves, clave)
		}
		f.Valores[clave] = v
	}
	_, err = dec.Token()
	return err
}

func (f Fila) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.Claves {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(f.Valores[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Reporte is the fetched data of one tab.
type Reporte struct {
	Tipo   TipoReporte
	Filtro FiltroReporte
	Filas  []Fila
}

// Columnas returns the keys of the first row, the export header.
func (r Reporte) Columnas() []string {
	if len(r.Filas) == 0 {
		return nil
	}
	return r.Filas[0].Claves
}
