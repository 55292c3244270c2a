package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingStore)(nil)

// SettingStore mapa clave/valor protegido por mutex.
type SettingStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettingStore crea un almacén vacío.
func NewSettingStore() *SettingStore {
	return &SettingStore{values: make(map[string]string)}
}

func (s *SettingStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *SettingStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
