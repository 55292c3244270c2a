// Package tui página interactiva de búsqueda sobre la lista cargada: filtro con espera
// (debounce), ubicación canónica resaltada con la original tachada y edición de la
// ubicación de respaldo.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/pkg/debounce"
)

// Lister lista registros filtrados y paginados (lo implementa *catalog.CatalogUseCase).
type Lister interface {
	List(ctx context.Context, query string, page dto.PageRequest) (*dto.RecordListResponse, error)
}

// FallbackSetter cambia la ubicación de respaldo (lo implementa *catalog.LocationUseCase).
type FallbackSetter interface {
	SetFallbackLocation(ctx context.Context, candidate string) (location.Code, error)
}

// Options configuración del navegador.
type Options struct {
	Catalog   Lister
	Locations FallbackSetter
	Debounce  time.Duration
	PageSize  int
}

// searchMsg consulta que sobrevivió a la ventana de espera.
type searchMsg struct{ query string }

const (
	colRow      = 6
	colProduct  = 20
	colQuantity = 10
)

// Model estado de la página.
type Model struct {
	catalog   Lister
	locations FallbackSetter
	pageSize  int

	search        textinput.Model
	fallbackInput textinput.Model
	editing       bool

	debouncer *debounce.Debouncer
	queries   chan string
	done      chan struct{} // se cierra al salir
	stop      func()

	query  string // consulta aplicada
	offset int
	list   *dto.RecordListResponse

	status    string
	statusErr bool

	keys   keyMap
	styles styles
}

// New construye el modelo y carga la primera página.
func New(opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	search := textinput.New()
	search.Placeholder = "product_id…"
	search.Prompt = "Buscar: "
	search.CharLimit = 64
	search.Width = 40
	search.Focus()

	fb := textinput.New()
	fb.Prompt = "Nuevo respaldo: "
	fb.Placeholder = "L-L-DD-DDD"
	fb.CharLimit = 10
	fb.Width = 12

	done := make(chan struct{})
	m := Model{
		catalog:       opts.Catalog,
		locations:     opts.Locations,
		pageSize:      opts.PageSize,
		search:        search,
		fallbackInput: fb,
		debouncer:     debounce.New(opts.Debounce),
		queries:       make(chan string, 1),
		done:          done,
		stop:          sync.OnceFunc(func() { close(done) }),
		keys:          defaultKeyMap(),
		styles:        defaultStyles(),
	}
	m.reload()
	return m
}

// Init arranca el cursor y la escucha de consultas.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSearch(m.queries, m.done))
}

// waitForSearch bloquea hasta que el debouncer entrega una consulta o se cierra done.
func waitForSearch(ch <-chan string, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case q := <-ch:
			return searchMsg{query: q}
		case <-done:
			return nil
		}
	}
}

// deliver deja q en ch, reemplazando una consulta aún no leída.
func deliver(ch chan string, q string) {
	for {
		select {
		case ch <- q:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Update procesa teclas y consultas.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchMsg:
		m.query = msg.query
		m.offset = 0
		m.reload()
		return m, waitForSearch(m.queries, m.done)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.debouncer.Cancel()
			m.stop()
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		candidate := strings.TrimSpace(m.fallbackInput.Value())
		v, err := m.locations.SetFallbackLocation(context.Background(), candidate)
		if err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("ubicación de respaldo: "+v.String(), false)
		}
		m.stopEditing()
		m.reload()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.fallbackInput, cmd = m.fallbackInput.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.fallbackInput.Blur()
	m.fallbackInput.SetValue("")
	m.search.Focus()
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.EditFallback):
		m.editing = true
		m.search.Blur()
		m.fallbackInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NextPage):
		if m.list != nil && m.offset+m.pageSize < m.list.Page.Total {
			m.offset += m.pageSize
			m.reload()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		if m.offset > 0 {
			m.offset = max(0, m.offset-m.pageSize)
			m.reload()
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		if m.search.Value() == "" {
			return m, nil
		}
		m.search.SetValue("")
		m.schedule("")
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.schedule(m.search.Value())
	}
	return m, cmd
}

// schedule programa la consulta; una nueva dentro de la ventana descarta la anterior.
func (m Model) schedule(q string) {
	ch := m.queries
	m.debouncer.Schedule(func() { deliver(ch, q) })
}

func (m *Model) reload() {
	list, err := m.catalog.List(context.Background(), m.query, dto.PageRequest{Limit: m.pageSize, Offset: m.offset})
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.list = list
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View pinta la página.
func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	title := "Ubicaciones"
	if m.list != nil && m.list.FileName != "" {
		title = fmt.Sprintf("Ubicaciones · %s (%d registros)", m.list.FileName, m.list.TotalRecords)
	}
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")

	b.WriteString(m.search.View())
	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.fallbackInput.View())
	} else if m.list != nil {
		b.WriteString(s.Label.Render("Respaldo: ") + s.Location.Render(m.list.FallbackLocation.String()))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if m.status != "" {
		st := s.StatusOK
		if m.statusErr {
			st = s.StatusErr
		}
		b.WriteString(st.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(s.Muted.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderTable() string {
	s := m.styles
	cell := func(st lipgloss.Style, w int, v string) string {
		return st.Width(w).MaxWidth(w).Render(v)
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		cell(s.Header, colRow, "Fila"),
		cell(s.Header, colProduct, "Producto"),
		cell(s.Header, colQuantity, "Cantidad"),
		s.Header.Render("Ubicación"),
	))
	b.WriteString("\n")

	if m.list == nil || len(m.list.Items) == 0 {
		b.WriteString(s.Muted.Render("sin registros"))
		b.WriteString("\n")
		return b.String()
	}
	for _, it := range m.list.Items {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			cell(s.Cell, colRow, fmt.Sprintf("%d", it.RowNumber)),
			cell(s.Cell, colProduct, it.ProductID),
			cell(s.Cell, colQuantity, it.RemainingQuantity.String()),
			m.renderLocation(it.Location),
		))
		b.WriteString("\n")
	}

	p := m.list.Page
	if p.Total > 0 {
		end := min(p.Offset+len(m.list.Items), p.Total)
		b.WriteString(s.Muted.Render(fmt.Sprintf("%d-%d de %d", p.Offset+1, end, p.Total)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLocation(r location.Resolution) string {
	s := m.styles
	out := s.Location.Render(r.Canonical.String())
	if r.Kind == location.KindCanonical {
		return out
	}
	original := r.Original
	if original == "" {
		original = "(vacía)"
	}
	out += " " + s.Original.Render(original)
	if r.UsedFallback {
		out += " " + s.Fallback.Render("respaldo")
	}
	return out
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// Run ejecuta la página en pantalla completa hasta que el usuario sale.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}
