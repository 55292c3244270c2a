package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
)

// CatalogHandler carga, búsqueda y etiquetas de la lista de registros.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Upload godoc
// @Summary      Cargar hoja de cálculo
// @Description  Reemplaza la lista vigente con la primera hoja del archivo. El nombre debe contener "xls" o "csv". Un contenido ilegible responde 422 UNREADABLE_FILE y conserva la lista.
// @Tags         catalog
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo xlsx/xlsm/csv"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/catalog/upload [post]
func (h *CatalogHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo multipart 'file' es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// IngestRows godoc
// @Summary      Cargar filas JSON
// @Description  Reemplaza la lista vigente con filas ya parseadas (claves product_id, remain_quantity, basket_location).
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IngestRowsRequest  true  "Filas"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/catalog/rows [post]
func (h *CatalogHandler) IngestRows(c *fiber.Ctx) error {
	var in dto.IngestRowsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "rows.json"
	}
	out, err := h.uc.IngestRows(c.UserContext(), source, in.Rows)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar registros
// @Description  Filtra por subcadena de product_id (sin distinguir mayúsculas) y resuelve la ubicación de cada fila.
// @Tags         catalog
// @Produce      json
// @Param        q       query  string  false  "Texto a buscar"
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.RecordListResponse
// @Router       /api/catalog/records [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 10),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.UserContext(), c.Query("q"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Labels godoc
// @Summary      Etiquetas PDF
// @Description  Genera una hoja con QR de producto y de ubicación para cada registro que coincide con q.
// @Tags         catalog
// @Produce      application/pdf
// @Param        q    query  string  false  "Texto a buscar"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/labels.pdf [get]
func (h *CatalogHandler) Labels(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.Labels(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
