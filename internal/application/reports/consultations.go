package reports

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// ConsultationFilter criterios del reporte de consultas. TutorID filtra por
// el responsable de los animales atendidos.
type ConsultationFilter struct {
	AnimalID string
	TutorID  string
	From     *time.Time
	To       *time.Time
}

// ConsultationRow una consulta del reporte junto con el animal atendido y
// el profesional.
type ConsultationRow struct {
	Consultation *entity.Consultation
	Animal       *entity.Animal
	Veterinarian *entity.Veterinarian
}

// Consultations genera el reporte de consultas, de la más reciente a la más
// antigua. El filtro por tutor se resuelve aquí contra el animal de cada
// consulta; el repositorio solo restringe animal y rango de fechas.
func (uc *UseCase) Consultations(filter ConsultationFilter, limit, offset int) ([]ConsultationRow, error) {
	var (
		regs []*entity.Consultation
		err  error
	)
	if filter.AnimalID != "" {
		regs, err = uc.consultations.ListByAnimal(filter.AnimalID, 0, 0)
	} else {
		regs, err = uc.consultations.List(filter.From, filter.To, 0, 0)
	}
	if err != nil {
		return nil, err
	}

	animalsByID := make(map[string]*entity.Animal)
	vetsByID := make(map[string]*entity.Veterinarian)
	var rows []ConsultationRow
	for _, c := range regs {
		if filter.AnimalID != "" {
			if filter.From != nil && c.AttendedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && c.AttendedAt.After(*filter.To) {
				continue
			}
		}
		animal, ok := animalsByID[c.AnimalID]
		if !ok {
			animal, err = uc.animals.GetByID(c.AnimalID)
			if err != nil {
				return nil, err
			}
			animalsByID[c.AnimalID] = animal
		}
		if filter.TutorID != "" && (animal == nil || animal.TutorID != filter.TutorID) {
			continue
		}
		vet, ok := vetsByID[c.VeterinarianID]
		if !ok {
			vet, err = uc.vets.GetByID(c.VeterinarianID)
			if err != nil {
				return nil, err
			}
			vetsByID[c.VeterinarianID] = vet
		}
		rows = append(rows, ConsultationRow{Consultation: c, Animal: animal, Veterinarian: vet})
	}
	return pageRows(rows, limit, offset), nil
}

func pageRows[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
