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

	// Errores del libro de stock de medicamentos.
	ErrInvalidQuantity   = errors.New("cantidad inválida: debe ser mayor que cero")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicateLot      = errors.New("el código de lote ya está registrado")
	ErrLotInUse          = errors.New("el lote tiene movimientos o consumos asociados")
	ErrInvalidExpiry     = errors.New("la fecha de vencimiento ya pasó")
)
