package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrPartialWrite indica que una pareja TRANSFER quedó a medias: una fila se
	// escribió y la otra falló fuera de una transacción. El caller debe reconciliar
	// con un ADJUSTMENT compensatorio.
	ErrPartialWrite = errors.New("escritura parcial de pareja de transferencia")
)
