package domain

import "errors"

// Errores de dominio comunes a las capas de aplicación e interfaz.
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnsupportedDialect = errors.New("formato de lonja no soportado")
	ErrEmptyBatch         = errors.New("el lote no contiene documentos")
)
