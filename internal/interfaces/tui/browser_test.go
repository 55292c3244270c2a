package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/memory"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/pdf"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/spreadsheet"
)

func newTestModel(t *testing.T, debounceWindow time.Duration) (Model, *catalog.LocationUseCase) {
	t.Helper()
	store := memory.NewRecordStore()
	locations := catalog.NewLocationUseCase(memory.NewSettingStore(), location.DefaultFallback, zerolog.Nop())
	uc := catalog.NewCatalogUseCase(memory.NewTxRunner(store), store, locations,
		spreadsheet.NewParser(), pdf.NewMarotoLabelGenerator(), zerolog.Nop())

	_, err := uc.IngestRows(context.Background(), "inventario.xlsx", []map[string]any{
		{"product_id": "ABC1", "remain_quantity": 3, "basket_location": "AB53004"},
		{"product_id": "XYZ9", "remain_quantity": 0, "basket_location": "A-C-10-200"},
		{"product_id": "ABD2", "remain_quantity": 1, "basket_location": "basura"},
	})
	require.NoError(t, err)

	m := New(Options{Catalog: uc, Locations: locations, Debounce: debounceWindow, PageSize: 2})
	t.Cleanup(func() { m.debouncer.Cancel() })
	return m, locations
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(Model)
}

func TestNew_CargaPrimeraPagina(t *testing.T) {
	m, _ := newTestModel(t, time.Hour)

	require.NotNil(t, m.list)
	assert.Len(t, m.list.Items, 2)
	assert.Equal(t, 3, m.list.Page.Total)

	view := m.View()
	assert.Contains(t, view, "inventario.xlsx")
	assert.Contains(t, view, "ABC1")
	assert.Contains(t, view, "A-B-53-004")
	assert.Contains(t, view, "AB53004", "la ubicación original se muestra junto a la canónica")
	assert.Contains(t, view, "1-2 de 3")
}

func TestPaginacion(t *testing.T) {
	m, _ := newTestModel(t, time.Hour)

	m = press(m, tea.KeyPgDown)
	require.Len(t, m.list.Items, 1)
	assert.Equal(t, "ABD2", m.list.Items[0].ProductID)
	assert.Contains(t, m.View(), "basura")

	m = press(m, tea.KeyPgDown)
	assert.Equal(t, 2, m.offset, "no avanza más allá del total")

	m = press(m, tea.KeyPgUp)
	assert.Equal(t, 0, m.offset)
}

func TestBusqueda_EsperaLaVentana(t *testing.T) {
	m, _ := newTestModel(t, time.Hour)

	m = typeText(m, "ab")
	assert.Equal(t, "ab", m.search.Value())
	assert.Equal(t, "", m.query, "la consulta no se aplica hasta que vence la ventana")
	assert.True(t, m.debouncer.Pending())

	next, cmd := m.Update(searchMsg{query: "ab"})
	m = next.(Model)
	require.NotNil(t, cmd, "se vuelve a escuchar la siguiente consulta")
	assert.Equal(t, 2, m.list.Page.Total)
	assert.NotContains(t, m.View(), "XYZ9")
}

func TestBusqueda_SoloLlegaLaUltima(t *testing.T) {
	m, _ := newTestModel(t, 20*time.Millisecond)

	m = typeText(m, "x")
	m = typeText(m, "y")
	m = typeText(m, "z")

	select {
	case q := <-m.queries:
		assert.Equal(t, "xyz", q)
	case <-time.After(time.Second):
		t.Fatal("la consulta nunca llegó")
	}
	select {
	case q := <-m.queries:
		t.Fatalf("consulta inesperada %q", q)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestBusqueda_EscLimpia(t *testing.T) {
	m, _ := newTestModel(t, time.Hour)
	m = typeText(m, "abc")
	m = press(m, tea.KeyEsc)
	assert.Equal(t, "", m.search.Value())
	assert.True(t, m.debouncer.Pending())
}

func TestEditarRespaldo(t *testing.T) {
	m, locations := newTestModel(t, time.Hour)

	m = press(m, tea.KeyCtrlE)
	require.True(t, m.editing)
	m = typeText(m, "CD01002")
	m = press(m, tea.KeyEnter)

	assert.False(t, m.editing)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "CD01002 no tiene el formato L-L-DD-DDD")
	fb, err := locations.FallbackLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, location.DefaultFallback, fb, "un valor inválido no reemplaza al vigente")

	m = press(m, tea.KeyCtrlE)
	m = typeText(m, "C-D-01-002")
	m = press(m, tea.KeyEnter)

	assert.False(t, m.statusErr)
	assert.Equal(t, location.Code("C-D-01-002"), m.list.FallbackLocation)
	assert.True(t, strings.Contains(m.View(), "C-D-01-002"))
}

func TestEditarRespaldo_EscCancela(t *testing.T) {
	m, _ := newTestModel(t, time.Hour)
	m = press(m, tea.KeyCtrlE)
	m = typeText(m, "Z-Z")
	m = press(m, tea.KeyEsc)
	assert.False(t, m.editing)
	assert.Equal(t, "", m.fallbackInput.Value())
	assert.Equal(t, "", m.search.Value(), "lo tecleado al editar no va a la búsqueda")
}

func TestSalirCancelaPendiente(t *testing.T) {
	m, _ := newTestModel(t, time.Hour)
	m = typeText(m, "a")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.debouncer.Pending())
}

func TestSalirLiberaEscucha(t *testing.T) {
	m, _ := newTestModel(t, time.Hour)
	listen := waitForSearch(m.queries, m.done)

	got := make(chan tea.Msg, 1)
	go func() { got <- listen() }()

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("la escucha de consultas sigue bloqueada tras salir")
	}
}
