// Package memory implementa los puertos de persistencia en memoria del proceso.
// Es el almacenamiento por defecto cuando no se configura PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordStore)(nil)

// RecordStore guarda la carga vigente. ReplaceAll cambia el puntero completo bajo lock,
// así que un lector ve la lista anterior o la nueva, nunca una mezcla.
type RecordStore struct {
	mu    sync.RWMutex
	batch *entity.Batch
}

// NewRecordStore crea un almacén vacío.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// ReplaceAll sustituye la carga vigente por una copia de batch.
func (s *RecordStore) ReplaceAll(_ context.Context, batch *entity.Batch) error {
	cp := *batch
	cp.Records = append([]entity.Record(nil), batch.Records...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = &cp
	return nil
}

// Current devuelve la carga vigente o nil si no hay ninguna.
func (s *RecordStore) Current(_ context.Context) (*entity.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.batch == nil {
		return nil, nil
	}
	cp := *s.batch
	return &cp, nil
}
