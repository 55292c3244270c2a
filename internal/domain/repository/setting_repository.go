package repository

import "context"

// SettingRepository persiste valores de configuración editables por el usuario
// (por ahora solo la ubicación de respaldo).
type SettingRepository interface {
	// Get devuelve ok=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
