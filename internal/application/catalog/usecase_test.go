package catalog_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
	"github.com/jhoicas/ubicacion-qr/internal/domain"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type stubParser struct {
	rows  []catalog.RawRow
	err   error
	calls int
}

func (p *stubParser) Parse(_ string, r io.Reader) ([]catalog.RawRow, error) {
	p.calls++
	_, _ = io.Copy(io.Discard, r)
	return p.rows, p.err
}

type stubLabels struct {
	sheet catalog.LabelSheet
}

func (g *stubLabels) GenerateLabels(_ context.Context, sheet catalog.LabelSheet) ([]byte, error) {
	g.sheet = sheet
	return []byte("%PDF-stub"), nil
}

type fixture struct {
	uc        *catalog.CatalogUseCase
	locations *catalog.LocationUseCase
	parser    *stubParser
	labels    *stubLabels
}

func newFixture(rows ...catalog.RawRow) *fixture {
	store := memory.NewRecordStore()
	locations := catalog.NewLocationUseCase(memory.NewSettingStore(), location.DefaultFallback, zerolog.Nop())
	parser := &stubParser{rows: rows}
	labels := &stubLabels{}
	uc := catalog.NewCatalogUseCase(memory.NewTxRunner(store), store, locations, parser, labels, zerolog.Nop())
	return &fixture{uc: uc, locations: locations, parser: parser, labels: labels}
}

func row(n int, product any, qty any, loc any) catalog.RawRow {
	fields := map[string]any{}
	if product != nil {
		fields["product_id"] = product
	}
	if qty != nil {
		fields["remain_quantity"] = qty
	}
	if loc != nil {
		fields["basket_location"] = loc
	}
	return catalog.RawRow{Number: n, Fields: fields}
}

// ──────────────────────────────────────────────────────────────────────────────
// Upload
// ──────────────────────────────────────────────────────────────────────────────

func TestUpload_ArchivoNoSoportado(t *testing.T) {
	f := newFixture(row(1, "P1", "1", "A-B-53-004"))
	_, err := f.uc.Upload(context.Background(), "foto.png", strings.NewReader("x"))
	require.Error(t, err)

	var ufe *domain.UnsupportedFileError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "foto.png", ufe.FileName)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
	assert.Equal(t, 0, f.parser.calls, "no se debe leer el archivo")
}

func TestUpload_ArchivoNoSoportadoConservaListaAnterior(t *testing.T) {
	ctx := context.Background()
	f := newFixture(row(1, "P1", "1", "A-B-53-004"))
	_, err := f.uc.Upload(ctx, "inventario.xlsx", strings.NewReader(""))
	require.NoError(t, err)

	_, err = f.uc.Upload(ctx, "otro.txt", strings.NewReader(""))
	require.Error(t, err)

	list, err := f.uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalRecords)
	assert.Equal(t, "inventario.xlsx", list.FileName)
}

func TestUpload_DescartaFilasSinProductID(t *testing.T) {
	f := newFixture(
		row(1, "P1", 3.0, "A-B-53-004"),
		row(2, nil, 1.0, "AB53004"),
		row(3, "   ", 1.0, "AB53004"),
		row(4, "P4", "abc", "AB53004"),
		row(5, 12345.0, nil, nil),
	)
	out, err := f.uc.Upload(context.Background(), "stock.xls", strings.NewReader(""))
	require.NoError(t, err)

	assert.NotEmpty(t, out.BatchID)
	assert.Equal(t, 2, out.TotalRecords)
	require.Len(t, out.Skipped, 3)
	assert.Equal(t, 2, out.Skipped[0].Row)
	assert.Equal(t, "product_id", out.Skipped[0].Field)
	assert.Equal(t, 4, out.Skipped[2].Row)
	assert.Equal(t, "remain_quantity", out.Skipped[2].Field)

	list, err := f.uc.List(context.Background(), "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "12345", list.Items[1].ProductID)
	assert.True(t, list.Items[1].RemainingQuantity.IsZero())
}

func TestUpload_SinFilasValidasConservaLista(t *testing.T) {
	ctx := context.Background()
	f := newFixture(row(1, "P1", "1", "A-B-53-004"))
	_, err := f.uc.Upload(ctx, "a.xlsx", strings.NewReader(""))
	require.NoError(t, err)

	f.parser.rows = []catalog.RawRow{row(1, nil, "1", "x")}
	_, err = f.uc.Upload(ctx, "b.xlsx", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyUpload)

	list, err := f.uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "a.xlsx", list.FileName)
}

func TestUpload_ErrorDelLector(t *testing.T) {
	f := newFixture()
	cause := errors.New("zip corrupto")
	f.parser.err = cause
	_, err := f.uc.Upload(context.Background(), "a.xlsx", strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "no se pudo leer a.xlsx como hoja de cálculo", err.Error())
}

func TestIngestRows_NumeraDesdeUno(t *testing.T) {
	f := newFixture()
	out, err := f.uc.IngestRows(context.Background(), "api", []map[string]any{
		{"product_id": "A1", "remain_quantity": 2.5, "basket_location": "AB53004"},
		{"remain_quantity": 1.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalRecords)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, 2, out.Skipped[0].Row)

	list, err := f.uc.List(context.Background(), "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Items[0].RowNumber)
	assert.True(t, decimal.NewFromFloat(2.5).Equal(list.Items[0].RemainingQuantity))
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_SinCarga(t *testing.T) {
	f := newFixture()
	list, err := f.uc.List(context.Background(), "x", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalRecords)
	assert.Empty(t, list.Items)
	assert.Equal(t, location.DefaultFallback, list.FallbackLocation)
	assert.Equal(t, 10, list.Page.Limit)
}

func TestList_ResuelveUbicaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(
		row(1, "ABC1", "1", "C-D-10-200"),
		row(2, "abc2", "1", "AB53004"),
		row(3, "XYZ", "1", "bad"),
	)
	_, err := f.uc.Upload(ctx, "inv.xlsx", strings.NewReader(""))
	require.NoError(t, err)

	_, err = f.locations.SetFallbackLocation(ctx, "X-Y-99-999")
	require.NoError(t, err)

	list, err := f.uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)

	assert.Equal(t, location.KindCanonical, list.Items[0].Location.Kind)
	assert.Equal(t, location.Code("A-B-53-004"), list.Items[1].Location.Canonical)
	assert.False(t, list.Items[1].Location.UsedFallback)
	assert.Equal(t, location.Code("X-Y-99-999"), list.Items[2].Location.Canonical)
	assert.True(t, list.Items[2].Location.UsedFallback)
	assert.Equal(t, "bad", list.Items[2].Location.Original)
}

func TestList_FiltraYPagina(t *testing.T) {
	ctx := context.Background()
	rows := make([]catalog.RawRow, 0, 25)
	for i := 1; i <= 25; i++ {
		id := "OTRO"
		if i%2 == 0 {
			id = "abc"
		}
		rows = append(rows, row(i, id, "1", "A-B-53-004"))
	}
	f := newFixture(rows...)
	_, err := f.uc.Upload(ctx, "inv.xlsx", strings.NewReader(""))
	require.NoError(t, err)

	list, err := f.uc.List(ctx, "ABC", dto.PageRequest{Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, list.TotalRecords)
	assert.Equal(t, 12, list.Page.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 22, list.Items[0].RowNumber)
	assert.Equal(t, 24, list.Items[1].RowNumber)

	list, err = f.uc.List(ctx, "ABC", dto.PageRequest{Limit: 5, Offset: 100})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ubicación de respaldo
// ──────────────────────────────────────────────────────────────────────────────

func TestSetFallbackLocation_RechazoConservaValor(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	got, err := f.locations.SetFallbackLocation(ctx, "not-a-code")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	assert.Equal(t, location.DefaultFallback, got)

	cur, err := f.locations.FallbackLocation(ctx)
	require.NoError(t, err)
	assert.Equal(t, location.DefaultFallback, cur)

	got, err = f.locations.SetFallbackLocation(ctx, "X-Y-99-999")
	require.NoError(t, err)
	assert.Equal(t, location.Code("X-Y-99-999"), got)

	_, err = f.locations.SetFallbackLocation(ctx, "x-y-99-999")
	require.Error(t, err)
	cur, _ = f.locations.FallbackLocation(ctx)
	assert.Equal(t, location.Code("X-Y-99-999"), cur)
}

func TestNewLocationUseCase_DefaultInvalido(t *testing.T) {
	uc := catalog.NewLocationUseCase(memory.NewSettingStore(), "nope", zerolog.Nop())
	cur, err := uc.FallbackLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, location.DefaultFallback, cur)
}

func TestResolve_UsaRespaldoVigente(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.locations.SetFallbackLocation(ctx, "Q-W-01-002")
	require.NoError(t, err)

	r, err := f.locations.Resolve(ctx, "??")
	require.NoError(t, err)
	assert.True(t, r.UsedFallback)
	assert.Equal(t, location.Code("Q-W-01-002"), r.Canonical)
}

// ──────────────────────────────────────────────────────────────────────────────
// Labels
// ──────────────────────────────────────────────────────────────────────────────

func TestLabels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(row(1, "ABC1", "2", "AB53004"), row(2, "ZZZ", "1", "bad"))

	_, _, err := f.uc.Labels(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin carga no hay etiquetas")

	_, err = f.uc.Upload(ctx, "inv.xlsx", strings.NewReader(""))
	require.NoError(t, err)

	pdf, name, err := f.uc.Labels(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(pdf))
	assert.True(t, strings.HasPrefix(name, "etiquetas_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	require.Len(t, f.labels.sheet.Items, 1)
	assert.Equal(t, location.Code("A-B-53-004"), f.labels.sheet.Items[0].Location.Canonical)

	_, _, err = f.uc.Labels(ctx, "sin-coincidencias")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
