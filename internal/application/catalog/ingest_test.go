package catalog_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain"
)

func TestIsSpreadsheetName(t *testing.T) {
	cases := map[string]bool{
		"inventario.xlsx": true,
		"inventario.xls":  true,
		"INVENTARIO.XLSX": true,
		"macro.xlsm":      true,
		"export.csv":      true,
		"foto.png":        false,
		"informe.pdf":     false,
		"":                false,
		"xls-copia.txt":   true, // solo se mira la marca en el nombre
	}
	for name, want := range cases {
		assert.Equal(t, want, catalog.IsSpreadsheetName(name), name)
	}
}

func TestToRecords_TiposSueltos(t *testing.T) {
	rows := []catalog.RawRow{
		{Number: 1, Fields: map[string]any{"product_id": "A1", "remain_quantity": json.Number("4"), "basket_location": "AB53004"}},
		{Number: 2, Fields: map[string]any{"Product_ID ": "B2", "REMAIN_QUANTITY": "7.5"}},
		{Number: 3, Fields: map[string]any{"product_id": 99, "remain_quantity": 3}},
		{Number: 4, Fields: map[string]any{"product_id": "C3", "remain_quantity": -1.0}},
	}
	recs, rejected := catalog.ToRecords(rows)
	require.Len(t, recs, 3)
	require.Len(t, rejected, 1)

	assert.Equal(t, "A1", recs[0].ProductID)
	assert.True(t, decimal.NewFromInt(4).Equal(recs[0].RemainingQuantity))
	assert.Equal(t, "AB53004", recs[0].LocationCode)

	assert.Equal(t, "B2", recs[1].ProductID, "la cabecera se compara sin mayúsculas ni espacios")
	assert.Equal(t, "7.5", recs[1].RemainingQuantity.String())
	assert.Equal(t, "", recs[1].LocationCode)

	assert.Equal(t, "99", recs[2].ProductID)
	assert.Equal(t, 3, recs[2].RowNumber)

	assert.Equal(t, 4, rejected[0].Row)
	assert.True(t, errors.Is(rejected[0], domain.ErrInvalidField))
}

func TestToRecords_SinProductID(t *testing.T) {
	_, rejected := catalog.ToRecords([]catalog.RawRow{{Number: 7, Fields: map[string]any{"basket_location": "A-B-53-004"}}})
	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], domain.ErrMissingField)
	assert.Equal(t, "product_id", rejected[0].Field)
	assert.Contains(t, rejected[0].Error(), "fila 7")
}
