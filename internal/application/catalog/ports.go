package catalog

import (
	"context"
	"image/color"
	"io"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repositorio de registros atado a ella.
// Garantiza que el reemplazo de la lista sea atómico para los lectores.
type TxRunner interface {
	Run(ctx context.Context, fn func(records repository.RecordRepository) error) error
}

// RawRow es una fila sin tipar tal cual la entrega el lector de hojas de cálculo:
// Number es el índice de fila en la hoja (la cabecera es la fila 0) y Fields
// está indexado por el texto de la cabecera. La presencia de campos no está garantizada.
type RawRow struct {
	Number int
	Fields map[string]any
}

// SpreadsheetParser lee la primera hoja de un archivo y la convierte en filas sin tipar.
type SpreadsheetParser interface {
	Parse(fileName string, r io.Reader) ([]RawRow, error)
}

// LabelItem una etiqueta de la hoja imprimible.
type LabelItem struct {
	RowNumber         int
	ProductID         string
	RemainingQuantity decimal.Decimal
	Location          location.Resolution
}

// LabelSheet datos de la hoja de etiquetas.
type LabelSheet struct {
	Title    string
	Query    string
	Fallback location.Code
	Items    []LabelItem
}

// LabelPDFGenerator genera la hoja de etiquetas con los códigos QR. Implementado en infraestructura.
type LabelPDFGenerator interface {
	GenerateLabels(ctx context.Context, sheet LabelSheet) ([]byte, error)
}

// QRStyle colores de un código QR.
type QRStyle struct {
	Foreground color.Color
	Background color.Color
}

// QREncoder codifica content como imagen PNG cuadrada de size píxeles.
type QREncoder interface {
	EncodePNG(content string, size int, style QRStyle) ([]byte, error)
}
