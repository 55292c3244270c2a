package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
)

// ErrInvalidCodes algún código pasado a validate no tiene el formato canónico.
var ErrInvalidCodes = errors.New("hay códigos inválidos")

// CodeCheck resultado de validar un código.
type CodeCheck struct {
	Code       string        `json:"code"`
	Valid      bool          `json:"valid"`
	Normalized location.Code `json:"normalized,omitempty"` // solo para códigos compactos
}

// NewValidateCommand crea el comando validate.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate CODE...",
		Short: "Valida códigos de ubicación (L-L-DD-DDD)",
		Long: `Valida cada código contra el formato L-L-DD-DDD.

Los códigos compactos de 7 caracteres (p. ej. AB53004) se informan como inválidos
junto con su forma normalizada. Termina con error si algún código es inválido.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args)
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command, codes []string) error {
	checks := make([]CodeCheck, 0, len(codes))
	invalid := 0
	for _, c := range codes {
		chk := CodeCheck{Code: c, Valid: location.Validate(c)}
		if !chk.Valid {
			invalid++
			if location.IsCompact(c) {
				chk.Normalized = location.Normalize(c)
			}
		}
		checks = append(checks, chk)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(checks); err != nil {
			return err
		}
	} else {
		for _, chk := range checks {
			switch {
			case chk.Valid:
				printf(out, "%s\tválido\n", chk.Code)
			case chk.Normalized != "":
				printf(out, "%s\tinválido (compacto: %s)\n", chk.Code, chk.Normalized)
			default:
				printf(out, "%s\tinválido\n", chk.Code)
			}
		}
	}

	if invalid > 0 {
		return ErrInvalidCodes
	}
	return nil
}
