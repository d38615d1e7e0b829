package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mariaalvez/vetclinic-api/internal/domain/stock"
)

var hoy = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func fecha(dias int) time.Time { return hoy.AddDate(0, 0, dias) }

func TestStatus(t *testing.T) {
	casos := []struct {
		nombre   string
		expiry   time.Time
		esperado string
	}{
		{"vencido ayer", fecha(-1), stock.StatusExpired},
		{"vencido hace un año", fecha(-365), stock.StatusExpired},
		{"vence hoy", fecha(0), stock.StatusExpiringSoon},
		{"vence en 1 día", fecha(1), stock.StatusExpiringSoon},
		{"vence justo en la ventana (30 días)", fecha(30), stock.StatusExpiringSoon},
		{"vence fuera de la ventana (31 días)", fecha(31), stock.StatusOK},
		{"vence en un año", fecha(365), stock.StatusOK},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, stock.Status(c.expiry, hoy))
		})
	}
}

// El estado no depende de la hora del día: una fecha de vencimiento a las
// 23:59 del día anterior sigue siendo "vencido" aunque "hoy" sea las 00:01.
func TestStatus_IgnoraHoraDelDia(t *testing.T) {
	expiry := time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC)
	today := time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, stock.StatusExpired, stock.Status(expiry, today))
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, stock.DaysUntil(fecha(0), hoy))
	assert.Equal(t, 15, stock.DaysUntil(fecha(15), hoy))
	assert.Equal(t, -7, stock.DaysUntil(fecha(-7), hoy))
}
