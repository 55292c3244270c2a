package catalog

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jhoicas/ubicacion-qr/internal/domain"
)

// Tipos de código QR que se pintan en la tabla.
const (
	QRKindProduct  = "product"
	QRKindLocation = "location"
)

// Límites del lado de la imagen QR, en píxeles.
const (
	QRMinSize     = 64
	QRMaxSize     = 1024
	QRDefaultSize = 160
)

var (
	colorBlack = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorRed   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// QRUseCase genera las imágenes QR de códigos de producto y de ubicación.
// Los QR de ubicación llevan fondo rojo para distinguirlos a simple vista.
type QRUseCase struct {
	encoder     QREncoder
	defaultSize int
}

// NewQRUseCase construye el caso de uso. defaultSize fuera de rango se reemplaza por QRDefaultSize.
func NewQRUseCase(encoder QREncoder, defaultSize int) *QRUseCase {
	if defaultSize < QRMinSize || defaultSize > QRMaxSize {
		defaultSize = QRDefaultSize
	}
	return &QRUseCase{encoder: encoder, defaultSize: defaultSize}
}

// Render devuelve el PNG del QR de value. size <= 0 usa el tamaño por defecto; fuera de
// [QRMinSize, QRMaxSize] se recorta al límite.
func (uc *QRUseCase) Render(kind, value string, size int) ([]byte, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("%w: value requerido", domain.ErrInvalidInput)
	}
	var style QRStyle
	switch kind {
	case QRKindProduct:
		style = QRStyle{Foreground: colorBlack, Background: colorWhite}
	case QRKindLocation:
		style = QRStyle{Foreground: colorBlack, Background: colorRed}
	default:
		return nil, fmt.Errorf("%w: tipo de QR %q", domain.ErrInvalidInput, kind)
	}
	switch {
	case size <= 0:
		size = uc.defaultSize
	case size < QRMinSize:
		size = QRMinSize
	case size > QRMaxSize:
		size = QRMaxSize
	}
	png, err := uc.encoder.EncodePNG(value, size, style)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	return png, nil
}
