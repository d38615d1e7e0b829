package reports

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// ServiceFilter criterios del reporte de servicios tercerizados. Search
// busca dentro de las notas de medicamentos y procedimientos, sin distinguir
// acentos ni mayúsculas.
type ServiceFilter struct {
	CompanyID string
	AnimalID  string
	From      *time.Time
	To        *time.Time
	Search    string
}

// ServiceRow un registro del reporte junto con la empresa y el animal.
type ServiceRow struct {
	Record  *entity.ServiceRecord
	Company *entity.ServiceCompany
	Animal  *entity.Animal
}

// Services genera el reporte de servicios tercerizados, del más reciente al
// más antiguo. La búsqueda por texto se hace aquí para tolerar acentos; el
// repositorio restringe empresa, animal y rango de fechas.
func (uc *UseCase) Services(filter ServiceFilter, limit, offset int) ([]ServiceRow, error) {
	regs, err := uc.serviceRecs.List(repository.ServiceRecordFilter{
		CompanyID:     filter.CompanyID,
		AnimalID:      filter.AnimalID,
		PerformedFrom: filter.From,
		PerformedTo:   filter.To,
	}, 0, 0)
	if err != nil {
		return nil, err
	}

	companiesByID := make(map[string]*entity.ServiceCompany)
	animalsByID := make(map[string]*entity.Animal)
	var rows []ServiceRow
	for _, r := range regs {
		if filter.Search != "" &&
			!foldContains(r.MedicationsNote, filter.Search) &&
			!foldContains(r.ProceduresNote, filter.Search) {
			continue
		}
		company, ok := companiesByID[r.CompanyID]
		if !ok {
			company, err = uc.companies.GetByID(r.CompanyID)
			if err != nil {
				return nil, err
			}
			companiesByID[r.CompanyID] = company
		}
		animal, ok := animalsByID[r.AnimalID]
		if !ok {
			animal, err = uc.animals.GetByID(r.AnimalID)
			if err != nil {
				return nil, err
			}
			animalsByID[r.AnimalID] = animal
		}
		rows = append(rows, ServiceRow{Record: r, Company: company, Animal: animal})
	}
	return pageRows(rows, limit, offset), nil
}
