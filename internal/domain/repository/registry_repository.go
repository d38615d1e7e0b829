package repository

import "github.com/mariaalvez/vetclinic-api/internal/domain/entity"

// TutorRepository define el puerto de persistencia para tutores.
type TutorRepository interface {
	Create(tutor *entity.Tutor) error
	GetByID(id string) (*entity.Tutor, error)
	GetByCPF(cpf string) (*entity.Tutor, error)
	Update(tutor *entity.Tutor) error
	List(limit, offset int) ([]*entity.Tutor, error)
	Delete(id string) error
}

// AnimalRepository define el puerto de persistencia para animales.
type AnimalRepository interface {
	Create(animal *entity.Animal) error
	GetByID(id string) (*entity.Animal, error)
	Update(animal *entity.Animal) error
	ListByTutor(tutorID string, limit, offset int) ([]*entity.Animal, error)
	List(limit, offset int) ([]*entity.Animal, error)
	Delete(id string) error
}

// VeterinarianRepository define el puerto de persistencia para veterinarios.
type VeterinarianRepository interface {
	Create(vet *entity.Veterinarian) error
	GetByID(id string) (*entity.Veterinarian, error)
	Update(vet *entity.Veterinarian) error
	List(limit, offset int) ([]*entity.Veterinarian, error)
	Delete(id string) error
}
