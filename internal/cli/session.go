package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/memory"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/pdf"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/spreadsheet"
)

// session casos de uso sobre almacenamiento en memoria con una hoja ya cargada.
type session struct {
	catalog   *catalog.CatalogUseCase
	locations *catalog.LocationUseCase
	upload    *dto.UploadResponse
}

// openSession carga path en memoria usando opts.Fallback como ubicación de respaldo.
func openSession(ctx context.Context, opts *RootOptions, path string) (*session, error) {
	store := memory.NewRecordStore()
	locations := catalog.NewLocationUseCase(memory.NewSettingStore(), location.Code(opts.Fallback), opts.log.Component("location"))
	uc := catalog.NewCatalogUseCase(
		memory.NewTxRunner(store), store, locations,
		spreadsheet.NewParser(), pdf.NewMarotoLabelGenerator(),
		opts.log.Component("catalog"),
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	up, err := uc.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", path, err)
	}
	return &session{catalog: uc, locations: locations, upload: up}, nil
}

// all recorre todas las páginas de la lista filtrada.
func (s *session) all(ctx context.Context, query string) ([]dto.RecordResponse, location.Code, error) {
	var items []dto.RecordResponse
	page := dto.PageRequest{Limit: 100}
	for {
		list, err := s.catalog.List(ctx, query, page)
		if err != nil {
			return nil, "", err
		}
		items = append(items, list.Items...)
		page.Offset += len(list.Items)
		if len(list.Items) == 0 || page.Offset >= list.Page.Total {
			return items, list.FallbackLocation, nil
		}
	}
}
