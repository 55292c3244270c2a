package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInvalidLocation = errors.New("ubicación con formato inválido")
	ErrUnsupportedFile = errors.New("archivo no soportado")
	ErrMissingField    = errors.New("campo requerido ausente")
	ErrInvalidField    = errors.New("campo con valor inválido")
	ErrEmptyUpload     = errors.New("el archivo no contiene filas válidas")
	ErrUnreadableFile  = errors.New("archivo ilegible")
)

// LocationFormatError se devuelve cuando un código de ubicación candidato no cumple
// el formato canónico L-L-DD-DDD. Value es el valor rechazado, tal cual lo envió el usuario.
type LocationFormatError struct {
	Value string
}

func (e *LocationFormatError) Error() string {
	return fmt.Sprintf("%s no tiene el formato L-L-DD-DDD", e.Value)
}

func (e *LocationFormatError) Unwrap() error { return ErrInvalidLocation }

// UnsupportedFileError: el nombre del archivo no contiene una marca de hoja de cálculo reconocida.
type UnsupportedFileError struct {
	FileName string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("%s no es un archivo excel", e.FileName)
}

func (e *UnsupportedFileError) Unwrap() error { return ErrUnsupportedFile }

// UnreadableFileError: el nombre pasa el filtro pero el contenido no se pudo leer como hoja
// de cálculo (xls binario, xlsx corrupto, csv sin cabecera). Err conserva la causa para el log.
type UnreadableFileError struct {
	FileName string
	Err      error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("no se pudo leer %s como hoja de cálculo", e.FileName)
}

func (e *UnreadableFileError) Unwrap() []error { return []error{ErrUnreadableFile, e.Err} }

// FieldError describe una fila rechazada en la frontera de ingesta.
// Err es ErrMissingField o ErrInvalidField.
type FieldError struct {
	Row   int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("fila %d: %s: %v", e.Row, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
