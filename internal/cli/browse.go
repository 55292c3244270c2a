package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ubicacion-qr/internal/interfaces/tui"
)

// NewBrowseCommand crea el comando browse.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Página interactiva de búsqueda con edición de la ubicación de respaldo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts, args[0])
			if err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Catalog:   s.catalog,
				Locations: s.locations,
				Debounce:  time.Duration(rootOpts.cfg.Location.SearchDebounceMS) * time.Millisecond,
			})
		},
	}
}
