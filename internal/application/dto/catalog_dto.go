package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
)

// UploadResponse resultado de reemplazar la lista de registros.
type UploadResponse struct {
	BatchID      string       `json:"batch_id"`
	FileName     string       `json:"file_name"`
	TotalRecords int          `json:"total_records"`
	Skipped      []SkippedRow `json:"skipped"`
	UploadedAt   time.Time    `json:"uploaded_at"`
}

// SkippedRow fila descartada en la ingesta y el motivo.
type SkippedRow struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// RecordResponse un registro listo para pintar: datos de la fila más la ubicación resuelta.
type RecordResponse struct {
	RowNumber         int                 `json:"row_number"`
	ProductID         string              `json:"product_id"`
	RemainingQuantity decimal.Decimal     `json:"remain_quantity"`
	Location          location.Resolution `json:"location"`
}

// RecordListResponse lista filtrada y paginada de registros.
// TotalRecords es el tamaño de la carga completa; Page.Total el de la lista filtrada.
type RecordListResponse struct {
	BatchID          string           `json:"batch_id,omitempty"`
	FileName         string           `json:"file_name,omitempty"`
	TotalRecords     int              `json:"total_records"`
	Query            string           `json:"query"`
	FallbackLocation location.Code    `json:"fallback_location"`
	Items            []RecordResponse `json:"items"`
	Page             PageResponse     `json:"page"`
}

// FallbackLocationRequest entrada para cambiar la ubicación de respaldo.
type FallbackLocationRequest struct {
	Value string `json:"value" validate:"required"`
}

// FallbackLocationResponse ubicación de respaldo vigente.
type FallbackLocationResponse struct {
	Value location.Code `json:"value"`
}

// IngestRowsRequest filas ya parseadas (p. ej. por un cliente que leyó la hoja en el navegador).
// Source se usa como nombre de la carga; si está vacío se usa "rows.json".
type IngestRowsRequest struct {
	Source string           `json:"source"`
	Rows   []map[string]any `json:"rows" validate:"required"`
}
