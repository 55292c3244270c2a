package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ubicacion-qr/internal/domain"
	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
)

// Columnas esperadas en la cabecera de la hoja.
const (
	FieldProductID         = "product_id"
	FieldRemainingQuantity = "remain_quantity"
	FieldLocation          = "basket_location"
)

// spreadsheetMarkers fragmentos del nombre de archivo que se aceptan como hoja de cálculo.
var spreadsheetMarkers = []string{"xls", "csv"}

// IsSpreadsheetName indica si el nombre del archivo contiene una marca de hoja de cálculo
// (xls, xlsx, xlsm, csv). No se mira el contenido.
func IsSpreadsheetName(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range spreadsheetMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// ToRecords convierte filas sin tipar en registros. Las filas sin product_id o con un
// saldo ilegible se descartan y se devuelven como *domain.FieldError; el resto conserva
// el orden de entrada.
func ToRecords(rows []RawRow) ([]entity.Record, []*domain.FieldError) {
	records := make([]entity.Record, 0, len(rows))
	var rejected []*domain.FieldError
	for _, row := range rows {
		rec, ferr := toRecord(row)
		if ferr != nil {
			rejected = append(rejected, ferr)
			continue
		}
		records = append(records, rec)
	}
	return records, rejected
}

func toRecord(row RawRow) (entity.Record, *domain.FieldError) {
	productID := strings.TrimSpace(stringValue(lookup(row.Fields, FieldProductID)))
	if productID == "" {
		return entity.Record{}, &domain.FieldError{Row: row.Number, Field: FieldProductID, Err: domain.ErrMissingField}
	}
	qty, err := quantityValue(lookup(row.Fields, FieldRemainingQuantity))
	if err != nil {
		return entity.Record{}, &domain.FieldError{
			Row: row.Number, Field: FieldRemainingQuantity,
			Err: fmt.Errorf("%w: %v", domain.ErrInvalidField, err),
		}
	}
	return entity.Record{
		RowNumber:         row.Number,
		ProductID:         productID,
		RemainingQuantity: qty,
		LocationCode:      stringValue(lookup(row.Fields, FieldLocation)),
	}, nil
}

// lookup busca la columna por nombre exacto y, si no existe, ignorando mayúsculas y espacios.
func lookup(fields map[string]any, key string) any {
	if v, ok := fields[key]; ok {
		return v
	}
	for k, v := range fields {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return v
		}
	}
	return nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func quantityValue(v any) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch t := v.(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		d = decimal.NewFromFloat(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	default:
		s := strings.TrimSpace(stringValue(t))
		if s == "" {
			return decimal.Zero, nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("saldo %q no es numérico", s)
		}
		d = parsed
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("saldo negativo %s", d.String())
	}
	return d, nil
}
