package cli

import (
	"encoding/json"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
)

// ResolveOutput salida json de resolve.
type ResolveOutput struct {
	FileName         string               `json:"file_name"`
	FallbackLocation location.Code        `json:"fallback_location"`
	Query            string               `json:"query"`
	Skipped          []dto.SkippedRow     `json:"skipped"`
	Items            []dto.RecordResponse `json:"items"`
}

// NewResolveCommand crea el comando resolve.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "resolve FILE",
		Short: "Muestra la ubicación resuelta de cada fila de una hoja",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, cmd, args[0], query)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filtra por product_id (subcadena, sin distinguir mayúsculas)")
	return cmd
}

func runResolve(opts *RootOptions, cmd *cobra.Command, path, query string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts, path)
	if err != nil {
		return err
	}
	items, fallback, err := s.all(ctx, query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ResolveOutput{
			FileName:         s.upload.FileName,
			FallbackLocation: fallback,
			Query:            query,
			Skipped:          s.upload.Skipped,
			Items:            items,
		})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	printf(tw, "FILA\tPRODUCTO\tCANTIDAD\tUBICACIÓN\tORIGINAL\n")
	for _, it := range items {
		original := ""
		if it.Location.Kind != location.KindCanonical {
			original = it.Location.Original
			if it.Location.UsedFallback {
				original += " (respaldo)"
			}
		}
		printf(tw, "%d\t%s\t%s\t%s\t%s\n", it.RowNumber, it.ProductID, it.RemainingQuantity.String(), it.Location.Canonical, original)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	for _, sk := range s.upload.Skipped {
		printf(errOut, "fila %d descartada: %s: %s\n", sk.Row, sk.Field, sk.Reason)
	}
	return nil
}
