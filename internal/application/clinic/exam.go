package clinic

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// ExamUseCase administra el catálogo de exámenes de la clínica.
type ExamUseCase struct {
	repo repository.ExamRepository
}

// NewExamUseCase construye el caso de uso.
func NewExamUseCase(repo repository.ExamRepository) *ExamUseCase {
	return &ExamUseCase{repo: repo}
}

const maxExamNameLen = 100

func validateExamName(name string) error {
	if name == "" || len(name) > maxExamNameLen {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create agrega un examen al catálogo. Devuelve domain.ErrDuplicate si el
// nombre ya existe.
func (uc *ExamUseCase) Create(name string) (*entity.Exam, error) {
	if err := validateExamName(name); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	exam := &entity.Exam{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Update renombra un examen del catálogo.
func (uc *ExamUseCase) Update(id, name string) (*entity.Exam, error) {
	if err := validateExamName(name); err != nil {
		return nil, err
	}
	exam, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	exam.Name = name
	if err := uc.repo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// GetByID obtiene un examen por ID.
func (uc *ExamUseCase) GetByID(id string) (*entity.Exam, error) {
	exam, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, domain.ErrNotFound
	}
	return exam, nil
}

// List lista el catálogo con paginación.
func (uc *ExamUseCase) List(limit, offset int) ([]*entity.Exam, error) {
	return uc.repo.List(limit, offset)
}

// Delete quita un examen del catálogo. Devuelve domain.ErrConflict mientras
// alguna consulta lo referencie.
func (uc *ExamUseCase) Delete(id string) error {
	exam, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if exam == nil {
		return domain.ErrNotFound
	}
	count, err := uc.repo.CountConsultations(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
