package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
)

// LocationUseCase administra la ubicación de respaldo y resuelve códigos contra ella.
// La ubicación de respaldo vive en el SettingRepository; si no hay valor guardado se usa
// defaultFallback.
type LocationUseCase struct {
	settings        repository.SettingRepository
	defaultFallback location.Code
	log             zerolog.Logger
}

// NewLocationUseCase construye el caso de uso. defaultFallback debe ser un código válido.
func NewLocationUseCase(settings repository.SettingRepository, defaultFallback location.Code, log zerolog.Logger) *LocationUseCase {
	if !location.Validate(string(defaultFallback)) {
		defaultFallback = location.DefaultFallback
	}
	return &LocationUseCase{settings: settings, defaultFallback: defaultFallback, log: log}
}

// FallbackLocation devuelve la ubicación de respaldo vigente.
func (uc *LocationUseCase) FallbackLocation(ctx context.Context) (location.Code, error) {
	v, ok, err := uc.settings.Get(ctx, entity.SettingFallbackLocation)
	if err != nil {
		return "", fmt.Errorf("location: leer ubicación de respaldo: %w", err)
	}
	if !ok || !location.Validate(v) {
		return uc.defaultFallback, nil
	}
	return location.Code(v), nil
}

// SetFallbackLocation reemplaza la ubicación de respaldo si candidate es válida.
// Si no lo es, devuelve la vigente sin tocarla junto con *domain.LocationFormatError.
func (uc *LocationUseCase) SetFallbackLocation(ctx context.Context, candidate string) (location.Code, error) {
	current, err := uc.FallbackLocation(ctx)
	if err != nil {
		return "", err
	}
	next, err := location.SetFallback(candidate, current)
	if err != nil {
		uc.log.Warn().Str("candidate", candidate).Str("current", current.String()).Msg("ubicación de respaldo rechazada")
		return current, err
	}
	if err := uc.settings.Set(ctx, entity.SettingFallbackLocation, next.String()); err != nil {
		return current, fmt.Errorf("location: guardar ubicación de respaldo: %w", err)
	}
	uc.log.Info().Str("previous", current.String()).Str("fallback", next.String()).Msg("ubicación de respaldo actualizada")
	return next, nil
}

// Resolve resuelve code contra la ubicación de respaldo vigente.
func (uc *LocationUseCase) Resolve(ctx context.Context, code string) (location.Resolution, error) {
	fallback, err := uc.FallbackLocation(ctx)
	if err != nil {
		return location.Resolution{}, err
	}
	return location.Resolve(code, fallback), nil
}
