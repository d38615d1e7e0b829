package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// --- Consultas clínicas ---

type consultationRepo struct {
	store *Store
	work  *state
}

var _ repository.ConsultationRepository = (*consultationRepo)(nil)

func (r *consultationRepo) Create(c *entity.Consultation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := cloneConsultation(c)
	r.store.view(r.work, func(st *state) { st.consultations[c.ID] = cp })
	return nil
}

func (r *consultationRepo) GetByID(id string) (*entity.Consultation, error) {
	var out *entity.Consultation
	r.store.view(r.work, func(st *state) {
		if c, ok := st.consultations[id]; ok {
			out = cloneConsultation(c)
		}
	})
	return out, nil
}

func (r *consultationRepo) Update(c *entity.Consultation) error {
	cp := cloneConsultation(c)
	r.store.view(r.work, func(st *state) { st.consultations[c.ID] = cp })
	return nil
}

func (r *consultationRepo) ListByAnimal(animalID string, limit, offset int) ([]*entity.Consultation, error) {
	var all []*entity.Consultation
	r.store.view(r.work, func(st *state) {
		for _, c := range st.consultations {
			if c.AnimalID == animalID {
				all = append(all, cloneConsultation(c))
			}
		}
	})
	sortConsultations(all)
	return page(all, limit, offset), nil
}

func (r *consultationRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Consultation, error) {
	var all []*entity.Consultation
	r.store.view(r.work, func(st *state) {
		for _, c := range st.consultations {
			if from != nil && c.AttendedAt.Before(*from) {
				continue
			}
			if to != nil && c.AttendedAt.After(*to) {
				continue
			}
			all = append(all, cloneConsultation(c))
		}
	})
	sortConsultations(all)
	return page(all, limit, offset), nil
}

func (r *consultationRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.consultations, id) })
	return nil
}

// cloneConsultation copia la consulta incluyendo su lista de exámenes, para
// que el clon transaccional no comparta el slice con el estado confirmado.
func cloneConsultation(c *entity.Consultation) *entity.Consultation {
	cp := *c
	cp.ExamIDs = append([]string(nil), c.ExamIDs...)
	return &cp
}

func sortConsultations(all []*entity.Consultation) {
	sort.Slice(all, func(i, j int) bool { return all[i].AttendedAt.After(all[j].AttendedAt) })
}

// --- Vacunaciones ---

type vaccinationRepo struct {
	store *Store
	work  *state
}

var _ repository.VaccinationRepository = (*vaccinationRepo)(nil)

func (r *vaccinationRepo) Create(v *entity.Vaccination) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	cp := *v
	r.store.view(r.work, func(st *state) { st.vaccinations[v.ID] = &cp })
	return nil
}

func (r *vaccinationRepo) GetByID(id string) (*entity.Vaccination, error) {
	var out *entity.Vaccination
	r.store.view(r.work, func(st *state) {
		if v, ok := st.vaccinations[id]; ok {
			cp := *v
			out = &cp
		}
	})
	return out, nil
}

func (r *vaccinationRepo) Update(v *entity.Vaccination) error {
	cp := *v
	r.store.view(r.work, func(st *state) { st.vaccinations[v.ID] = &cp })
	return nil
}

func (r *vaccinationRepo) List(filter repository.VaccinationFilter, limit, offset int) ([]*entity.Vaccination, error) {
	var all []*entity.Vaccination
	r.store.view(r.work, func(st *state) {
		for _, v := range st.vaccinations {
			if filter.AnimalID != "" && v.AnimalID != filter.AnimalID {
				continue
			}
			if filter.LotID != "" && v.LotID != filter.LotID {
				continue
			}
			if filter.AppliedFrom != nil && v.AppliedAt.Before(*filter.AppliedFrom) {
				continue
			}
			if filter.AppliedTo != nil && v.AppliedAt.After(*filter.AppliedTo) {
				continue
			}
			cp := *v
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].AppliedAt.After(all[j].AppliedAt) })
	return page(all, limit, offset), nil
}

func (r *vaccinationRepo) ListDueBefore(limit time.Time) ([]*entity.Vaccination, error) {
	var all []*entity.Vaccination
	r.store.view(r.work, func(st *state) {
		for _, v := range st.vaccinations {
			if v.RevaccinationDate != nil && !v.RevaccinationDate.After(limit) {
				cp := *v
				all = append(all, &cp)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].RevaccinationDate.Before(*all[j].RevaccinationDate) })
	return all, nil
}

func (r *vaccinationRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.vaccinations, id) })
	return nil
}

// --- Vermifugaciones ---

type dewormingRepo struct {
	store *Store
	work  *state
}

var _ repository.DewormingRepository = (*dewormingRepo)(nil)

func (r *dewormingRepo) Create(d *entity.Deworming) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	cp := *d
	r.store.view(r.work, func(st *state) { st.dewormings[d.ID] = &cp })
	return nil
}

func (r *dewormingRepo) GetByID(id string) (*entity.Deworming, error) {
	var out *entity.Deworming
	r.store.view(r.work, func(st *state) {
		if d, ok := st.dewormings[id]; ok {
			cp := *d
			out = &cp
		}
	})
	return out, nil
}

func (r *dewormingRepo) Update(d *entity.Deworming) error {
	cp := *d
	r.store.view(r.work, func(st *state) { st.dewormings[d.ID] = &cp })
	return nil
}

func (r *dewormingRepo) List(filter repository.DewormingFilter, limit, offset int) ([]*entity.Deworming, error) {
	var all []*entity.Deworming
	r.store.view(r.work, func(st *state) {
		for _, d := range st.dewormings {
			if filter.AnimalID != "" && d.AnimalID != filter.AnimalID {
				continue
			}
			if filter.LotID != "" && d.LotID != filter.LotID {
				continue
			}
			if filter.AdministeredFrom != nil && d.AdministeredAt.Before(*filter.AdministeredFrom) {
				continue
			}
			if filter.AdministeredTo != nil && d.AdministeredAt.After(*filter.AdministeredTo) {
				continue
			}
			cp := *d
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].AdministeredAt.After(all[j].AdministeredAt) })
	return page(all, limit, offset), nil
}

func (r *dewormingRepo) ListDueBefore(limit time.Time) ([]*entity.Deworming, error) {
	var all []*entity.Deworming
	r.store.view(r.work, func(st *state) {
		for _, d := range st.dewormings {
			if d.ReadministerBefore != nil && !d.ReadministerBefore.After(limit) {
				cp := *d
				all = append(all, &cp)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ReadministerBefore.Before(*all[j].ReadministerBefore) })
	return all, nil
}

func (r *dewormingRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.dewormings, id) })
	return nil
}

// --- Agendamientos ---

type appointmentRepo struct {
	store *Store
	work  *state
}

var _ repository.AppointmentRepository = (*appointmentRepo)(nil)

func (r *appointmentRepo) Create(a *entity.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	r.store.view(r.work, func(st *state) { st.appointments[a.ID] = &cp })
	return nil
}

func (r *appointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	var out *entity.Appointment
	r.store.view(r.work, func(st *state) {
		if a, ok := st.appointments[id]; ok {
			cp := *a
			out = &cp
		}
	})
	return out, nil
}

func (r *appointmentRepo) Update(a *entity.Appointment) error {
	cp := *a
	r.store.view(r.work, func(st *state) { st.appointments[a.ID] = &cp })
	return nil
}

func (r *appointmentRepo) ListBetween(from, to time.Time) ([]*entity.Appointment, error) {
	var all []*entity.Appointment
	r.store.view(r.work, func(st *state) {
		for _, a := range st.appointments {
			if a.ScheduledAt.Before(from) || a.ScheduledAt.After(to) {
				continue
			}
			cp := *a
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ScheduledAt.Before(all[j].ScheduledAt) })
	return all, nil
}

func (r *appointmentRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.appointments, id) })
	return nil
}
