package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewLabelsCommand crea el comando labels.
func NewLabelsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		query  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "labels FILE",
		Short: "Genera un PDF de etiquetas con QR de producto y de ubicación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts, args[0])
			if err != nil {
				return err
			}
			pdfBytes, name, err := s.catalog.Labels(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("etiquetas: %w", err)
			}
			if output == "" {
				output = name
			}
			if err := os.WriteFile(output, pdfBytes, 0o644); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s (%d bytes)\n", output, len(pdfBytes))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "solo registros cuyo product_id contiene el texto")
	cmd.Flags().StringVarP(&output, "out", "o", "", "archivo de salida (por defecto etiquetas_<fecha>.pdf)")
	return cmd
}
