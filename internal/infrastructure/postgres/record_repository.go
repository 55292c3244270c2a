package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo implementación del puerto RecordRepository sobre PostgreSQL (usable con pool o tx).
type RecordRepo struct {
	q Querier
}

// NewRecordRepository construye el adaptador. Pasar pool o tx (Querier).
// ReplaceAll debe ejecutarse dentro de una tx (ver TxRunner) para que el reemplazo sea atómico.
func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

// ReplaceAll borra el lote vigente (y sus registros, por cascada) e inserta batch con COPY.
func (r *RecordRepo) ReplaceAll(ctx context.Context, batch *entity.Batch) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM record_batches`); err != nil {
		return fmt.Errorf("delete batches: %w", err)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO record_batches (id, file_name, skipped, uploaded_at)
		VALUES ($1, $2, $3, $4)`,
		batch.ID, batch.FileName, batch.Skipped, batch.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	rows := make([][]any, 0, len(batch.Records))
	for i, rec := range batch.Records {
		rows = append(rows, []any{
			batch.ID, i, rec.RowNumber, rec.ProductID, rec.RemainingQuantity, rec.LocationCode,
		})
	}
	_, err = r.q.CopyFrom(ctx,
		pgx.Identifier{"records"},
		[]string{"batch_id", "seq", "row_num", "product_id", "remain_quantity", "basket_location"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy records: %w", err)
	}
	return nil
}

// Current devuelve el lote vigente con sus registros en el orden de carga.
// Cabecera y registros salen de una sola sentencia: un ReplaceAll concurrente no puede
// dejar al lector con el id del lote anterior y sin registros.
func (r *RecordRepo) Current(ctx context.Context) (*entity.Batch, error) {
	rows, err := r.q.Query(ctx, `
		SELECT b.id, b.file_name, b.skipped, b.uploaded_at,
		       r.row_num, r.product_id, r.remain_quantity, r.basket_location
		FROM record_batches b
		JOIN records r ON r.batch_id = b.id
		WHERE b.id = (SELECT id FROM record_batches ORDER BY uploaded_at DESC LIMIT 1)
		ORDER BY r.seq`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var b *entity.Batch
	for rows.Next() {
		var (
			hdr entity.Batch
			rec entity.Record
		)
		if err := rows.Scan(
			&hdr.ID, &hdr.FileName, &hdr.Skipped, &hdr.UploadedAt,
			&rec.RowNumber, &rec.ProductID, &rec.RemainingQuantity, &rec.LocationCode,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if b == nil {
			b = &hdr
		}
		b.Records = append(b.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	// Sin filas: no hay carga (ReplaceAll nunca guarda un lote vacío).
	return b, nil
}
