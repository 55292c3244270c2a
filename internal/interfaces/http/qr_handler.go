package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
)

// QRHandler sirve imágenes QR en PNG.
type QRHandler struct {
	uc *catalog.QRUseCase
}

// NewQRHandler construye el handler.
func NewQRHandler(uc *catalog.QRUseCase) *QRHandler {
	return &QRHandler{uc: uc}
}

// Render godoc
// @Summary      Imagen QR
// @Description  kind=product (fondo blanco) o kind=location (fondo rojo). size se limita a 64..1024 px y sube al número de módulos si el contenido lo exige.
// @Tags         qr
// @Produce      image/png
// @Param        kind   path   string  true   "product | location"
// @Param        value  query  string  true   "Contenido del QR"
// @Param        size   query  int     false  "Lado en píxeles"  default(160)
// @Success      200    {file}    binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/qr/{kind} [get]
func (h *QRHandler) Render(c *fiber.Ctx) error {
	png, err := h.uc.Render(c.Params("kind"), c.Query("value"), c.QueryInt("size", 0))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(png)
}
