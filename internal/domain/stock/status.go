package stock

import "time"

// Estados de vigencia de un lote (proyección de solo lectura para reportes).
const (
	StatusExpired      = "EXPIRED"       // vencido
	StatusExpiringSoon = "EXPIRING_SOON" // vence dentro de la ventana de aviso
	StatusOK           = "OK"
)

// ExpiryWarningDays es la ventana de aviso de vencimiento.
const ExpiryWarningDays = 30

// Status deriva el estado de vigencia de un lote a partir de su fecha de
// vencimiento y una fecha de referencia explícita (servicio de dominio puro,
// sin reloj ambiente: los tests pasan el "hoy" que necesiten).
func Status(expiry, today time.Time) string {
	e := truncateToDay(expiry)
	t := truncateToDay(today)
	if e.Before(t) {
		return StatusExpired
	}
	if !e.After(t.AddDate(0, 0, ExpiryWarningDays)) {
		return StatusExpiringSoon
	}
	return StatusOK
}

// DaysUntil devuelve los días calendario entre la fecha de referencia y una
// fecha objetivo (negativo si ya pasó). Usado por los reportes de revacunación
// y readministración.
func DaysUntil(target, today time.Time) int {
	return int(truncateToDay(target).Sub(truncateToDay(today)).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
