// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con semántica transaccional de copia y confirmación. Respalda los
// tests de los casos de uso y sirve como referencia del contrato que cumplen
// los adaptadores de PostgreSQL: si fn devuelve error, ningún cambio queda
// visible.
package memory

import (
	"context"
	"sync"

	"github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// state conjunto completo de datos. Las transacciones trabajan sobre un clon
// y el Store lo adopta solo si la función transaccional termina sin error.
type state struct {
	lots          map[string]*entity.Lot
	movements     map[string]*entity.Movement
	movementOrder []string
	links         map[string]*entity.ConsumptionLink
	consultations map[string]*entity.Consultation
	vaccinations  map[string]*entity.Vaccination
	dewormings    map[string]*entity.Deworming
	appointments  map[string]*entity.Appointment
	tutors        map[string]*entity.Tutor
	animals       map[string]*entity.Animal
	vets          map[string]*entity.Veterinarian
	exams         map[string]*entity.Exam
	companies     map[string]*entity.ServiceCompany
	serviceRecs   map[string]*entity.ServiceRecord
	users         map[string]*entity.User
}

func newState() *state {
	return &state{
		lots:          map[string]*entity.Lot{},
		movements:     map[string]*entity.Movement{},
		links:         map[string]*entity.ConsumptionLink{},
		consultations: map[string]*entity.Consultation{},
		vaccinations:  map[string]*entity.Vaccination{},
		dewormings:    map[string]*entity.Deworming{},
		appointments:  map[string]*entity.Appointment{},
		tutors:        map[string]*entity.Tutor{},
		animals:       map[string]*entity.Animal{},
		vets:          map[string]*entity.Veterinarian{},
		exams:         map[string]*entity.Exam{},
		companies:     map[string]*entity.ServiceCompany{},
		serviceRecs:   map[string]*entity.ServiceRecord{},
		users:         map[string]*entity.User{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, v := range s.lots {
		cp := *v
		c.lots[id] = &cp
	}
	for id, v := range s.movements {
		cp := *v
		c.movements[id] = &cp
	}
	c.movementOrder = append(c.movementOrder, s.movementOrder...)
	for id, v := range s.links {
		cp := *v
		c.links[id] = &cp
	}
	for id, v := range s.consultations {
		c.consultations[id] = cloneConsultation(v)
	}
	for id, v := range s.vaccinations {
		cp := *v
		c.vaccinations[id] = &cp
	}
	for id, v := range s.dewormings {
		cp := *v
		c.dewormings[id] = &cp
	}
	for id, v := range s.appointments {
		cp := *v
		c.appointments[id] = &cp
	}
	for id, v := range s.tutors {
		cp := *v
		c.tutors[id] = &cp
	}
	for id, v := range s.animals {
		cp := *v
		c.animals[id] = &cp
	}
	for id, v := range s.vets {
		cp := *v
		c.vets[id] = &cp
	}
	for id, v := range s.exams {
		cp := *v
		c.exams[id] = &cp
	}
	for id, v := range s.companies {
		cp := *v
		c.companies[id] = &cp
	}
	for id, v := range s.serviceRecs {
		cp := *v
		c.serviceRecs[id] = &cp
	}
	for id, v := range s.users {
		cp := *v
		c.users[id] = &cp
	}
	return c
}

// Store dataset compartido. El mutex serializa las transacciones, igual que
// el bloqueo de fila serializa los consumos por lote en PostgreSQL.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

var _ stock.TxRunner = (*Store)(nil)

// Run ejecuta fn sobre un clon del estado y lo adopta solo en caso de éxito.
func (s *Store) Run(_ context.Context, fn func(repos stock.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(s.reposFor(work)); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos devuelve repositorios que leen y escriben el estado confirmado
// directamente (fuera de transacción, para lecturas de reportes).
func (s *Store) Repos() stock.TxRepos {
	return s.reposFor(nil)
}

func (s *Store) reposFor(work *state) stock.TxRepos {
	return stock.TxRepos{
		Lots:          &lotRepo{store: s, work: work},
		Movements:     &movementRepo{store: s, work: work},
		Consumptions:  &consumptionRepo{store: s, work: work},
		Consultations: &consultationRepo{store: s, work: work},
		Vaccinations:  &vaccinationRepo{store: s, work: work},
		Dewormings:    &dewormingRepo{store: s, work: work},
	}
}

// Tutors devuelve el repositorio de tutores sobre el estado confirmado.
func (s *Store) Tutors() repository.TutorRepository { return &tutorRepo{store: s} }

// Animals devuelve el repositorio de animales sobre el estado confirmado.
func (s *Store) Animals() repository.AnimalRepository { return &animalRepo{store: s} }

// Vets devuelve el repositorio de veterinarios sobre el estado confirmado.
func (s *Store) Vets() repository.VeterinarianRepository { return &vetRepo{store: s} }

// Appointments devuelve el repositorio de agendamientos sobre el estado confirmado.
func (s *Store) Appointments() repository.AppointmentRepository { return &appointmentRepo{store: s} }

// Exams devuelve el repositorio del catálogo de exámenes sobre el estado confirmado.
func (s *Store) Exams() repository.ExamRepository { return &examRepo{store: s} }

// Companies devuelve el repositorio de empresas tercerizadas sobre el estado confirmado.
func (s *Store) Companies() repository.ServiceCompanyRepository { return &companyRepo{store: s} }

// ServiceRecords devuelve el repositorio de registros de servicios sobre el estado confirmado.
func (s *Store) ServiceRecords() repository.ServiceRecordRepository { return &serviceRecordRepo{store: s} }

// Users devuelve el repositorio de usuarios sobre el estado confirmado.
func (s *Store) Users() repository.UserRepository { return &userRepo{store: s} }

// view resuelve el estado a usar: el clon transaccional si existe, si no
// el confirmado bajo lock.
func (s *Store) view(work *state, fn func(st *state)) {
	if work != nil {
		fn(work)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}
