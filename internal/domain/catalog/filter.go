// Package catalog contiene la búsqueda sobre la lista de registros cargada.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
)

// Filter devuelve los registros cuyo ProductID contiene query, sin distinguir mayúsculas.
// Usa plegado Unicode completo: "ß" equivale a "ss".
// Con query vacío devuelve records tal cual. El orden original se conserva.
func Filter(records []entity.Record, query string) []entity.Record {
	if query == "" {
		return records
	}
	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]entity.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(fold.String(r.ProductID), needle) {
			out = append(out, r)
		}
	}
	return out
}
