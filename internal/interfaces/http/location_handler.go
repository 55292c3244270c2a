package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
)

// LocationHandler resolución de códigos y ubicación de respaldo.
type LocationHandler struct {
	uc *catalog.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *catalog.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Resolve godoc
// @Summary      Resolver código de ubicación
// @Description  Devuelve el código canónico: tal cual si es válido, expandido si tiene 7 caracteres, o la ubicación de respaldo.
// @Tags         locations
// @Produce      json
// @Param        code  query  string  false  "Código de ubicación"
// @Success      200   {object}  location.Resolution
// @Router       /api/locations/resolve [get]
func (h *LocationHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.uc.Resolve(c.UserContext(), c.Query("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetFallback godoc
// @Summary      Ubicación de respaldo vigente
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.FallbackLocationResponse
// @Router       /api/settings/fallback-location [get]
func (h *LocationHandler) GetFallback(c *fiber.Ctx) error {
	v, err := h.uc.FallbackLocation(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FallbackLocationResponse{Value: v})
}

// SetFallback godoc
// @Summary      Cambiar ubicación de respaldo
// @Description  Solo acepta códigos con formato L-L-DD-DDD; si no, conserva la vigente.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FallbackLocationRequest  true  "Nuevo valor"
// @Success      200   {object}  dto.FallbackLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/fallback-location [put]
func (h *LocationHandler) SetFallback(c *fiber.Ctx) error {
	var in dto.FallbackLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.SetFallbackLocation(c.UserContext(), in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FallbackLocationResponse{Value: v})
}
