// Package pdf genera la hoja imprimible de etiquetas QR con Maroto v2.
//
// Layout de cada etiqueta (una fila por registro):
//
//	┌──────────┬───────────────────────┬──────────┬───────────────────────┐
//	│ QR       │ N° fila                │ QR       │ UBICACIÓN canónica     │
//	│ producto │ Código de producto     │ ubicación│ Original (si cambió)   │
//	│          │ Saldo                  │ (rojo)   │                        │
//	└──────────┴───────────────────────┴──────────┴───────────────────────┘
package pdf

import (
	"context"
	"fmt"
	stdcolor "image/color"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/qrimage"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 64, Green: 150, Blue: 255}
	colorRed     = &props.Color{Red: 220, Green: 0, Blue: 0}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// locationQRStyle mismo estilo que el QR de ubicación del endpoint PNG.
var locationQRStyle = catalog.QRStyle{
	Foreground: stdcolor.RGBA{A: 255},
	Background: stdcolor.RGBA{R: 255, A: 255},
}

// locationQRPixels resolución del PNG incrustado; maroto lo escala a la celda.
const locationQRPixels = 256

// ── Generator ─────────────────────────────────────────────────────────────────

var _ catalog.LabelPDFGenerator = (*MarotoLabelGenerator)(nil)

// MarotoLabelGenerator implementa catalog.LabelPDFGenerator usando Maroto v2.
// El QR de producto lo dibuja maroto; el de ubicación es un PNG con fondo rojo.
type MarotoLabelGenerator struct {
	qr  catalog.QREncoder
	now func() time.Time
}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator {
	return &MarotoLabelGenerator{qr: qrimage.NewPNGEncoder(), now: time.Now}
}

// GenerateLabels genera el PDF y devuelve sus bytes.
func (g *MarotoLabelGenerator) GenerateLabels(ctx context.Context, sheet catalog.LabelSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiquetas de ubicación", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(sheet, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, item := range sheet.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		locQR, err := g.locationQR(item.Location.Canonical.String())
		if err != nil {
			return nil, err
		}
		m.AddRows(labelRow(item, locQR))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet catalog.LabelSheet, now time.Time) core.Row {
	filter := "Sin filtro"
	if sheet.Query != "" {
		filter = "Filtro: " + sheet.Query
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(sheet.Title, "Inventario"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %d códigos", filter, len(sheet.Items)), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Ubicación por defecto: "+sheet.Fallback.String(), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorRed, Top: 1,
			}),
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// locationQR devuelve el PNG del QR de ubicación con fondo rojo.
func (g *MarotoLabelGenerator) locationQR(value string) ([]byte, error) {
	png, err := g.qr.EncodePNG(value, locationQRPixels, locationQRStyle)
	if err != nil {
		return nil, fmt.Errorf("pdf: qr de ubicación %s: %w", value, err)
	}
	return png, nil
}

func labelRow(item catalog.LabelItem, locationQR []byte) core.Row {
	locationCol := col.New(4).Add(
		text.New(item.Location.Canonical.String(), props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorRed, Top: 6,
		}),
	)
	if item.Location.Kind != location.KindCanonical {
		locationCol.Add(text.New("Original: "+nonEmpty(item.Location.Original, "(vacío)"), props.Text{
			Style: fontstyle.Italic, Size: 8, Color: colorGray, Top: 14,
		}))
		if item.Location.UsedFallback {
			locationCol.Add(text.New("Ubicación por defecto", props.Text{
				Size: 7, Color: colorGray, Top: 20,
			}))
		}
	}

	return row.New(36).Add(
		col.New(2).Add(code.NewQr(item.ProductID, props.Rect{Percent: 90, Center: true})),
		col.New(4).Add(
			text.New(fmt.Sprintf("N° %d", item.RowNumber), props.Text{
				Size: 7, Color: colorGray, Top: 2, Left: 2,
			}),
			text.New(item.ProductID, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 6, Left: 2,
			}),
			text.New("Saldo: "+item.RemainingQuantity.String(), props.Text{
				Size: 9, Top: 14, Left: 2,
			}),
		),
		col.New(2).Add(image.NewFromBytes(locationQR, extension.Png, props.Rect{Percent: 90, Center: true})),
		locationCol,
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
