package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFila_KeepsKeyOrder(t *testing.T) {
	var filas []Fila
	raw := `[{"zona":"Norte","total":120.5,"cantidad":3},{"zona":"Sur","total":80,"cantidad":1}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &filas))

	require.Len(t, filas, 2)
	assert.Equal(t, []string{"zona", "total", "cantidad"}, filas[0].Claves)
	assert.Equal(t, json.Number("120.5"), filas[0].Valores["total"])

	out, err := json.Marshal(filas[0])
	require.NoError(t, err)
	assert.Equal(t, `{"zona":"Norte","total":120.5,"cantidad":3}`, string(out))
}

func TestFila_RejectsNonObject(t *testing.T) {
	var f Fila
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &f))
}

func TestTipoReporte_Valid(t *testing.T) {
	assert.True(t, ReporteSesionesCaja.Valid())
	assert.False(t, TipoReporte("nomina").Valid())
}
