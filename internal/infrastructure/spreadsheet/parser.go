// Package spreadsheet lee la primera hoja de archivos xlsx/xlsm (excelize) o csv y la
// convierte en filas sin tipar indexadas por la cabecera.
//
// Reglas comunes a ambos formatos:
//   - la primera fila no vacía es la cabecera;
//   - las filas completamente vacías se omiten;
//   - las celdas vacías no generan clave (el campo queda ausente);
//   - RawRow.Number es el índice de fila en la hoja, contando la cabecera como 0.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
)

var _ catalog.SpreadsheetParser = (*Parser)(nil)

// ErrNoHeader la hoja no tiene ninguna fila con contenido.
var ErrNoHeader = errors.New("spreadsheet: la hoja no tiene cabecera")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser implementa catalog.SpreadsheetParser.
type Parser struct{}

// NewParser construye el lector.
func NewParser() *Parser { return &Parser{} }

// Parse elige el formato por el nombre: csv si contiene "csv", xlsx en otro caso.
// Los .xls binarios (BIFF) no están soportados por excelize y devuelven error.
func (p *Parser) Parse(fileName string, r io.Reader) ([]catalog.RawRow, error) {
	if strings.Contains(strings.ToLower(fileName), "csv") {
		return p.parseCSV(r)
	}
	return p.parseXLSX(r)
}

func (p *Parser) parseXLSX(r io.Reader) ([]catalog.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: abrir libro: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer hoja %s: %w", sheets[0], err)
	}
	return toRawRows(rows)
}

func (p *Parser) parseCSV(r io.Reader) ([]catalog.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var text io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		// Exportaciones antiguas de Excel en Vietnam usan la página de códigos 1258.
		text = transform.NewReader(bytes.NewReader(data), charmap.Windows1258.NewDecoder())
	}

	cr := csv.NewReader(text)
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: parsear csv: %w", err)
	}
	return toRawRows(rows)
}

// detectDelimiter elige ';' si la primera línea tiene más ';' que ','.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func toRawRows(rows [][]string) ([]catalog.RawRow, error) {
	headerIdx := -1
	for i, r := range rows {
		if !blank(r) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]catalog.RawRow, 0, len(rows)-headerIdx-1)
	for i := headerIdx + 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		fields := make(map[string]any, len(header))
		for j, cell := range rows[i] {
			if j >= len(header) || header[j] == "" || cell == "" {
				continue
			}
			fields[header[j]] = cell
		}
		out = append(out, catalog.RawRow{Number: i - headerIdx, Fields: fields})
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
