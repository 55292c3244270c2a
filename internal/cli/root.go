// Package cli comandos de línea de ubicaqr: validar códigos, resolver una hoja,
// generar etiquetas y navegar la lista de forma interactiva.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/pkg/config"
	"github.com/jhoicas/ubicacion-qr/pkg/logger"
)

// RootOptions flags globales.
type RootOptions struct {
	Fallback string
	Format   string // "text" | "json"
	LogLevel string

	cfg *config.Config
	log *logger.Logger
}

// ValidFormats formatos de salida admitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz. cfg aporta los valores por defecto de los flags.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "ubicaqr",
		Short: "Ubicaciones de canasta y códigos QR a partir de hojas de inventario",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("formato %q inválido: debe ser uno de %v", opts.Format, ValidFormats)
			}
			if _, err := location.Parse(opts.Fallback); err != nil {
				return fmt.Errorf("--fallback: %w", err)
			}
			opts.log = logger.New(logger.Config{
				Env:    cfg.App.Env,
				Level:  opts.LogLevel,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Fallback, "fallback", cfg.Location.DefaultFallback, "ubicación de respaldo (L-L-DD-DDD)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "nivel de log (debug|info|warn|error)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewLabelsCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
