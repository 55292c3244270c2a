// Package qrimage genera imágenes PNG de códigos QR con boombuler/barcode.
package qrimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain"
)

var _ catalog.QREncoder = (*PNGEncoder)(nil)

// PNGEncoder implementa catalog.QREncoder. Nivel de corrección M, sin margen.
type PNGEncoder struct{}

// NewPNGEncoder construye el codificador.
func NewPNGEncoder() *PNGEncoder { return &PNGEncoder{} }

// EncodePNG codifica content en un QR de size x size píxeles con los colores de style.
// Si el QR tiene más módulos que size, el lado sube al número de módulos (1 px por módulo).
// Un content que no cabe en ninguna versión de QR devuelve domain.ErrInvalidInput.
func (e *PNGEncoder) EncodePNG(content string, size int, style catalog.QRStyle) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("%w: contenido no codificable como QR (%d bytes)", domain.ErrInvalidInput, len(content))
	}
	if modules := code.Bounds().Dx(); size < modules {
		size = modules
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrimage: escalar a %dpx: %w", size, err)
	}

	fg, bg := style.Foreground, style.Background
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}

	bounds := scaled.Bounds()
	img := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if dark(scaled.At(x, y)) {
				img.Set(x, y, fg)
			} else {
				img.Set(x, y, bg)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("qrimage: png: %w", err)
	}
	return buf.Bytes(), nil
}

func dark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return (r+g+b)/3 < 0x8000
}
