package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
)

var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las escrituras sobre el RecordStore. No hay rollback: el único
// cambio posible es ReplaceAll, que ya es atómico.
type TxRunner struct {
	mu    sync.Mutex
	store *RecordStore
}

// NewTxRunner construye el runner sobre store.
func NewTxRunner(store *RecordStore) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) Run(ctx context.Context, fn func(records repository.RecordRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.store)
}
