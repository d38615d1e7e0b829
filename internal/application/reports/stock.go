package reports

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/domain/stock"
)

// UseCase orquesta los reportes de solo lectura: stock, historial de
// movimientos, vacunación, vermifugación y el panel gerencial. No escribe
// nada; toda mutación de saldo pasa por el caso de uso del libro de stock.
type UseCase struct {
	lots          repository.LotRepository
	movements     repository.MovementRepository
	consultations repository.ConsultationRepository
	vaccinations  repository.VaccinationRepository
	dewormings    repository.DewormingRepository
	appointments  repository.AppointmentRepository
	serviceRecs   repository.ServiceRecordRepository
	companies     repository.ServiceCompanyRepository
	animals       repository.AnimalRepository
	vets          repository.VeterinarianRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	lots repository.LotRepository,
	movements repository.MovementRepository,
	consultations repository.ConsultationRepository,
	vaccinations repository.VaccinationRepository,
	dewormings repository.DewormingRepository,
	appointments repository.AppointmentRepository,
	serviceRecs repository.ServiceRecordRepository,
	companies repository.ServiceCompanyRepository,
	animals repository.AnimalRepository,
	vets repository.VeterinarianRepository,
) *UseCase {
	return &UseCase{
		lots:          lots,
		movements:     movements,
		consultations: consultations,
		vaccinations:  vaccinations,
		dewormings:    dewormings,
		appointments:  appointments,
		serviceRecs:   serviceRecs,
		companies:     companies,
		animals:       animals,
		vets:          vets,
	}
}

// StockFilter criterios del reporte de stock. Medication y LotCode se
// comparan sin distinguir acentos ni mayúsculas. Status, si viene, filtra
// por el estado de vigencia proyectado (stock.StatusExpired, etc.).
type StockFilter struct {
	Medication string
	LotCode    string
	Category   string
	Status     string
	ExpiryFrom *time.Time
	ExpiryTo   *time.Time
}

// StockRow un lote del reporte con su estado de vigencia proyectado.
type StockRow struct {
	Lot          *entity.Lot
	Status       string
	DaysToExpiry int
}

// StockSummary totales por situación, al estilo del panel de la clínica.
type StockSummary struct {
	Total        int
	WithStock    int
	OutOfStock   int
	Expired      int
	ExpiringSoon int
}

// StockReport reporte de stock a una fecha de referencia explícita.
type StockReport struct {
	AsOf    time.Time
	Summary StockSummary
	Rows    []StockRow
}

// Stock genera el reporte de stock. asOf es la fecha de referencia para la
// proyección de vigencia; el filtro por texto se hace aquí para que la
// búsqueda tolere acentos, el repositorio solo restringe categoría y fechas.
func (uc *UseCase) Stock(filter StockFilter, asOf time.Time) (*StockReport, error) {
	lots, err := uc.lots.List(repository.LotFilter{
		Category:   filter.Category,
		ExpiryFrom: filter.ExpiryFrom,
		ExpiryTo:   filter.ExpiryTo,
	}, 0, 0)
	if err != nil {
		return nil, err
	}

	report := &StockReport{AsOf: asOf, Rows: make([]StockRow, 0, len(lots))}
	for _, lot := range lots {
		if filter.Medication != "" && !foldContains(lot.Medication, filter.Medication) {
			continue
		}
		if filter.LotCode != "" && !foldContains(lot.LotCode, filter.LotCode) {
			continue
		}
		status := stock.Status(lot.ExpiryDate, asOf)
		if filter.Status != "" && status != filter.Status {
			continue
		}
		report.Rows = append(report.Rows, StockRow{
			Lot:          lot,
			Status:       status,
			DaysToExpiry: stock.DaysUntil(lot.ExpiryDate, asOf),
		})

		report.Summary.Total++
		if lot.Quantity > 0 {
			report.Summary.WithStock++
		} else {
			report.Summary.OutOfStock++
		}
		switch status {
		case stock.StatusExpired:
			report.Summary.Expired++
		case stock.StatusExpiringSoon:
			report.Summary.ExpiringSoon++
		}
	}
	return report, nil
}

// MovementRow un movimiento del historial junto con su lote.
type MovementRow struct {
	Movement *entity.Movement
	Lot      *entity.Lot
}

// MovementHistory devuelve el historial de movimientos, opcionalmente
// restringido a un lote y a un rango de fechas, del más reciente al más
// antiguo.
func (uc *UseCase) MovementHistory(lotID string, from, to *time.Time, limit, offset int) ([]MovementRow, error) {
	var (
		movements []*entity.Movement
		err       error
	)
	if lotID != "" {
		movements, err = uc.movements.ListByLot(lotID, from, to, limit, offset)
	} else {
		movements, err = uc.movements.List(from, to, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	// Cache local de lotes: el historial suele concentrarse en pocos lotes.
	lotsByID := make(map[string]*entity.Lot)
	rows := make([]MovementRow, 0, len(movements))
	for _, m := range movements {
		lot, ok := lotsByID[m.LotID]
		if !ok {
			lot, err = uc.lots.GetByID(m.LotID)
			if err != nil {
				return nil, err
			}
			lotsByID[m.LotID] = lot
		}
		rows = append(rows, MovementRow{Movement: m, Lot: lot})
	}
	return rows, nil
}
