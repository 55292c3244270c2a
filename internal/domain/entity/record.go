package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record representa una fila del inventario cargado desde la hoja de cálculo.
// ProductID nunca está vacío: la ingesta rechaza las filas sin product_id.
type Record struct {
	RowNumber         int             // posición en la hoja (solo presentación)
	ProductID         string          // mã hàng / código de producto
	RemainingQuantity decimal.Decimal // saldo; cero si la celda está vacía
	LocationCode      string          // ubicación tal cual viene del archivo, sin validar
}

// Batch es la lista completa de registros de una carga. Cada carga reemplaza a la anterior.
type Batch struct {
	ID         string
	FileName   string
	Records    []Record
	Skipped    int // filas descartadas en la ingesta
	UploadedAt time.Time
}

// Setting claves de configuración persistidas.
const (
	SettingFallbackLocation = "fallback_location"
)
