package repository

import (
	"context"

	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
)

// RecordRepository define el puerto de persistencia de la lista de registros vigente (DIP).
// Solo existe una lista a la vez: ReplaceAll sustituye la anterior por completo.
type RecordRepository interface {
	ReplaceAll(ctx context.Context, batch *entity.Batch) error
	// Current devuelve la carga vigente o (nil, nil) si todavía no se cargó ninguna.
	Current(ctx context.Context) (*entity.Batch, error)
}
