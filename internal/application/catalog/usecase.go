// Package catalog orquesta la carga de hojas de cálculo, la búsqueda y la resolución de
// ubicaciones para presentación (tabla, etiquetas PDF y códigos QR).
package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
	"github.com/jhoicas/ubicacion-qr/internal/domain"
	domaincatalog "github.com/jhoicas/ubicacion-qr/internal/domain/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
)

// CatalogUseCase casos de uso sobre la lista de registros vigente.
type CatalogUseCase struct {
	txRunner  TxRunner
	records   repository.RecordRepository
	locations *LocationUseCase
	parser    SpreadsheetParser
	labels    LabelPDFGenerator
	log       zerolog.Logger
	now       func() time.Time
}

// NewCatalogUseCase construye el caso de uso inyectando sus dependencias.
func NewCatalogUseCase(
	txRunner TxRunner,
	records repository.RecordRepository,
	locations *LocationUseCase,
	parser SpreadsheetParser,
	labels LabelPDFGenerator,
	log zerolog.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		txRunner:  txRunner,
		records:   records,
		locations: locations,
		parser:    parser,
		labels:    labels,
		log:       log,
		now:       time.Now,
	}
}

// Upload lee la primera hoja de un archivo y reemplaza la lista vigente.
//
// Retorna:
//   - *domain.UnsupportedFileError si el nombre no contiene xls/csv (no se lee el archivo).
//   - *domain.UnreadableFileError si el contenido no se puede leer.
//   - domain.ErrEmptyUpload si ninguna fila es válida.
//
// En todos los casos la lista anterior se conserva.
func (uc *CatalogUseCase) Upload(ctx context.Context, fileName string, r io.Reader) (*dto.UploadResponse, error) {
	if !IsSpreadsheetName(fileName) {
		uc.log.Warn().Str("file", fileName).Msg("archivo rechazado: no es hoja de cálculo")
		return nil, &domain.UnsupportedFileError{FileName: fileName}
	}
	rows, err := uc.parser.Parse(fileName, r)
	if err != nil {
		uc.log.Warn().Str("file", fileName).Err(err).Msg("archivo ilegible")
		return nil, &domain.UnreadableFileError{FileName: fileName, Err: err}
	}
	return uc.replace(ctx, fileName, rows)
}

// IngestRows reemplaza la lista vigente a partir de filas sin tipar (p. ej. JSON).
// Las filas se numeran desde 1 en el orden recibido.
func (uc *CatalogUseCase) IngestRows(ctx context.Context, source string, rows []map[string]any) (*dto.UploadResponse, error) {
	raw := make([]RawRow, 0, len(rows))
	for i, fields := range rows {
		raw = append(raw, RawRow{Number: i + 1, Fields: fields})
	}
	return uc.replace(ctx, source, raw)
}

func (uc *CatalogUseCase) replace(ctx context.Context, source string, rows []RawRow) (*dto.UploadResponse, error) {
	records, rejected := ToRecords(rows)
	skipped := make([]dto.SkippedRow, 0, len(rejected))
	for _, fe := range rejected {
		skipped = append(skipped, dto.SkippedRow{Row: fe.Row, Field: fe.Field, Reason: fe.Err.Error()})
		uc.log.Debug().Int("row", fe.Row).Str("field", fe.Field).Err(fe.Err).Msg("fila descartada")
	}
	if len(records) == 0 {
		uc.log.Warn().Str("file", source).Int("rows", len(rows)).Msg("carga sin filas válidas")
		return nil, domain.ErrEmptyUpload
	}

	batch := &entity.Batch{
		ID:         uuid.New().String(),
		FileName:   source,
		Records:    records,
		Skipped:    len(rejected),
		UploadedAt: uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(repo repository.RecordRepository) error {
		return repo.ReplaceAll(ctx, batch)
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: reemplazar registros: %w", err)
	}

	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("file", source).
		Int("records", len(records)).
		Int("skipped", len(rejected)).
		Msg("lista de registros reemplazada")

	return &dto.UploadResponse{
		BatchID:      batch.ID,
		FileName:     batch.FileName,
		TotalRecords: len(records),
		Skipped:      skipped,
		UploadedAt:   batch.UploadedAt,
	}, nil
}

// List filtra la lista vigente por query, la pagina y resuelve la ubicación de cada registro.
// Sin carga previa devuelve una lista vacía.
func (uc *CatalogUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.RecordListResponse, error) {
	page.DefaultPage()
	fallback, err := uc.locations.FallbackLocation(ctx)
	if err != nil {
		return nil, err
	}
	batch, err := uc.records.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: obtener registros: %w", err)
	}

	out := &dto.RecordListResponse{
		Query:            query,
		FallbackLocation: fallback,
		Items:            []dto.RecordResponse{},
		Page:             dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	if batch == nil {
		return out, nil
	}
	out.BatchID = batch.ID
	out.FileName = batch.FileName
	out.TotalRecords = len(batch.Records)

	filtered := domaincatalog.Filter(batch.Records, query)
	out.Page.Total = len(filtered)
	start := min(page.Offset, len(filtered))
	end := min(start+page.Limit, len(filtered))
	for _, r := range filtered[start:end] {
		out.Items = append(out.Items, dto.RecordResponse{
			RowNumber:         r.RowNumber,
			ProductID:         r.ProductID,
			RemainingQuantity: r.RemainingQuantity,
			Location:          location.Resolve(r.LocationCode, fallback),
		})
	}
	return out, nil
}

// Labels genera la hoja de etiquetas PDF de todos los registros que coinciden con query.
//
// Retorna domain.ErrNotFound si no hay carga o ningún registro coincide.
func (uc *CatalogUseCase) Labels(ctx context.Context, query string) (pdfBytes []byte, filename string, err error) {
	fallback, err := uc.locations.FallbackLocation(ctx)
	if err != nil {
		return nil, "", err
	}
	batch, err := uc.records.Current(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: obtener registros: %w", err)
	}
	if batch == nil {
		return nil, "", domain.ErrNotFound
	}
	filtered := domaincatalog.Filter(batch.Records, query)
	if len(filtered) == 0 {
		return nil, "", domain.ErrNotFound
	}

	sheet := LabelSheet{
		Title:    batch.FileName,
		Query:    query,
		Fallback: fallback,
		Items:    make([]LabelItem, 0, len(filtered)),
	}
	for _, r := range filtered {
		sheet.Items = append(sheet.Items, LabelItem{
			RowNumber:         r.RowNumber,
			ProductID:         r.ProductID,
			RemainingQuantity: r.RemainingQuantity,
			Location:          location.Resolve(r.LocationCode, fallback),
		})
	}

	pdfBytes, err = uc.labels.GenerateLabels(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: generar etiquetas: %w", err)
	}
	filename = fmt.Sprintf("etiquetas_%s.pdf", batch.UploadedAt.Format("20060102_150405"))
	return pdfBytes, filename, nil
}
