// Package location contiene las reglas de dominio de los códigos de ubicación de canastas:
// validación del formato canónico L-L-DD-DDD, normalización del formato compacto
// (LLDDDDD, típico de hojas de cálculo que pierden los guiones) y la política de
// resolución que decide qué código se muestra para cada registro.
package location

import (
	"regexp"

	"github.com/jhoicas/ubicacion-qr/internal/domain"
)

// DefaultFallback es la ubicación de respaldo inicial mientras el usuario no configure otra.
const DefaultFallback Code = "A-B-53-004"

// CompactLength es la longitud del formato compacto recuperable por Normalize.
const CompactLength = 7

var canonicalRe = regexp.MustCompile(`^[A-Z]-[A-Z]-[0-9]{2}-[0-9]{3}$`)

// Code es un código de ubicación con la forma canónica L-L-DD-DDD.
type Code string

func (c Code) String() string { return string(c) }

// Kind indica por cuál rama de Resolve se obtuvo el código canónico.
type Kind string

const (
	KindCanonical  Kind = "canonical"
	KindNormalized Kind = "normalized"
	KindFallback   Kind = "fallback"
)

// Resolution es el resultado que consume la capa de presentación: el código a mostrar
// (y a codificar en QR), el texto original y si se usó la ubicación de respaldo.
// Cuando Kind != KindCanonical el original se muestra tachado.
type Resolution struct {
	Canonical    Code   `json:"canonical"`
	Original     string `json:"original"`
	UsedFallback bool   `json:"used_fallback"`
	Kind         Kind   `json:"kind"`
}

// Validate devuelve true si code cumple exactamente ^[A-Z]-[A-Z]-\d{2}-\d{3}$. No normaliza.
func Validate(code string) bool {
	return canonicalRe.MatchString(code)
}

// Normalize convierte el formato compacto LLDDDDD en L-L-DD-DDD.
//
// Precondición: code tiene CompactLength caracteres. El resultado no se vuelve a validar:
// si las posiciones de dígitos traen letras, pasan tal cual. Con otra longitud la salida
// no tiene sentido; el llamador debe comprobar la longitud antes.
func Normalize(code string) Code {
	r := []rune(code)
	if len(r) < 4 {
		// Sin separar en segmentos no hay nada razonable que devolver.
		return Code(code)
	}
	return Code(string(r[0]) + "-" + string(r[1]) + "-" + string(r[2:4]) + "-" + string(r[4:]))
}

// IsCompact indica si code tiene la longitud del formato compacto.
func IsCompact(code string) bool {
	return len([]rune(code)) == CompactLength
}

// Resolve aplica, en orden:
//  1. code válido: se muestra tal cual.
//  2. code de 7 caracteres: se muestra Normalize(code), sin revalidar.
//  3. en otro caso: se muestra fallback.
func Resolve(code string, fallback Code) Resolution {
	switch {
	case Validate(code):
		return Resolution{Canonical: Code(code), Original: code, Kind: KindCanonical}
	case IsCompact(code):
		return Resolution{Canonical: Normalize(code), Original: code, Kind: KindNormalized}
	default:
		return Resolution{Canonical: fallback, Original: code, UsedFallback: true, Kind: KindFallback}
	}
}

// SetFallback devuelve candidate como nueva ubicación de respaldo si es válida.
// Si no lo es devuelve current sin cambios junto con un *domain.LocationFormatError.
func SetFallback(candidate string, current Code) (Code, error) {
	if !Validate(candidate) {
		return current, &domain.LocationFormatError{Value: candidate}
	}
	return Code(candidate), nil
}

// Parse valida code y lo devuelve como Code.
func Parse(code string) (Code, error) {
	if !Validate(code) {
		return "", &domain.LocationFormatError{Value: code}
	}
	return Code(code), nil
}
