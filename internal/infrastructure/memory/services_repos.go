package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// --- Catálogo de exámenes ---

type examRepo struct {
	store *Store
	work  *state
}

var _ repository.ExamRepository = (*examRepo)(nil)

func (r *examRepo) Create(e *entity.Exam) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	cp := *e
	r.store.view(r.work, func(st *state) { st.exams[e.ID] = &cp })
	return nil
}

func (r *examRepo) GetByID(id string) (*entity.Exam, error) {
	var out *entity.Exam
	r.store.view(r.work, func(st *state) {
		if e, ok := st.exams[id]; ok {
			cp := *e
			out = &cp
		}
	})
	return out, nil
}

func (r *examRepo) GetByName(name string) (*entity.Exam, error) {
	var out *entity.Exam
	r.store.view(r.work, func(st *state) {
		for _, e := range st.exams {
			if e.Name == name {
				cp := *e
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *examRepo) Update(e *entity.Exam) error {
	cp := *e
	r.store.view(r.work, func(st *state) { st.exams[e.ID] = &cp })
	return nil
}

func (r *examRepo) List(limit, offset int) ([]*entity.Exam, error) {
	var all []*entity.Exam
	r.store.view(r.work, func(st *state) {
		for _, e := range st.exams {
			cp := *e
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *examRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.exams, id) })
	return nil
}

func (r *examRepo) CountConsultations(examID string) (int, error) {
	count := 0
	r.store.view(r.work, func(st *state) {
		for _, c := range st.consultations {
			for _, id := range c.ExamIDs {
				if id == examID {
					count++
					break
				}
			}
		}
	})
	return count, nil
}

// --- Empresas tercerizadas ---

type companyRepo struct {
	store *Store
	work  *state
}

var _ repository.ServiceCompanyRepository = (*companyRepo)(nil)

func (r *companyRepo) Create(c *entity.ServiceCompany) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	r.store.view(r.work, func(st *state) { st.companies[c.ID] = &cp })
	return nil
}

func (r *companyRepo) GetByID(id string) (*entity.ServiceCompany, error) {
	var out *entity.ServiceCompany
	r.store.view(r.work, func(st *state) {
		if c, ok := st.companies[id]; ok {
			cp := *c
			out = &cp
		}
	})
	return out, nil
}

func (r *companyRepo) getBy(match func(*entity.ServiceCompany) bool) (*entity.ServiceCompany, error) {
	var out *entity.ServiceCompany
	r.store.view(r.work, func(st *state) {
		for _, c := range st.companies {
			if match(c) {
				cp := *c
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *companyRepo) GetByCNPJ(cnpj string) (*entity.ServiceCompany, error) {
	return r.getBy(func(c *entity.ServiceCompany) bool { return c.CNPJ == cnpj })
}

func (r *companyRepo) GetByName(name string) (*entity.ServiceCompany, error) {
	return r.getBy(func(c *entity.ServiceCompany) bool { return c.Name == name })
}

func (r *companyRepo) GetByEmail(email string) (*entity.ServiceCompany, error) {
	return r.getBy(func(c *entity.ServiceCompany) bool { return c.Email == email })
}

func (r *companyRepo) Update(c *entity.ServiceCompany) error {
	cp := *c
	r.store.view(r.work, func(st *state) { st.companies[c.ID] = &cp })
	return nil
}

func (r *companyRepo) List(limit, offset int) ([]*entity.ServiceCompany, error) {
	var all []*entity.ServiceCompany
	r.store.view(r.work, func(st *state) {
		for _, c := range st.companies {
			cp := *c
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *companyRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.companies, id) })
	return nil
}

// --- Registros de servicios ---

type serviceRecordRepo struct {
	store *Store
	work  *state
}

var _ repository.ServiceRecordRepository = (*serviceRecordRepo)(nil)

func (r *serviceRecordRepo) Create(rec *entity.ServiceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	cp := *rec
	r.store.view(r.work, func(st *state) { st.serviceRecs[rec.ID] = &cp })
	return nil
}

func (r *serviceRecordRepo) GetByID(id string) (*entity.ServiceRecord, error) {
	var out *entity.ServiceRecord
	r.store.view(r.work, func(st *state) {
		if rec, ok := st.serviceRecs[id]; ok {
			cp := *rec
			out = &cp
		}
	})
	return out, nil
}

func (r *serviceRecordRepo) Update(rec *entity.ServiceRecord) error {
	cp := *rec
	r.store.view(r.work, func(st *state) { st.serviceRecs[rec.ID] = &cp })
	return nil
}

func (r *serviceRecordRepo) List(filter repository.ServiceRecordFilter, limit, offset int) ([]*entity.ServiceRecord, error) {
	var all []*entity.ServiceRecord
	r.store.view(r.work, func(st *state) {
		for _, rec := range st.serviceRecs {
			if filter.CompanyID != "" && rec.CompanyID != filter.CompanyID {
				continue
			}
			if filter.AnimalID != "" && rec.AnimalID != filter.AnimalID {
				continue
			}
			if filter.PerformedFrom != nil && rec.PerformedAt.Before(*filter.PerformedFrom) {
				continue
			}
			if filter.PerformedTo != nil && rec.PerformedAt.After(*filter.PerformedTo) {
				continue
			}
			cp := *rec
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].PerformedAt.After(all[j].PerformedAt) })
	return page(all, limit, offset), nil
}

func (r *serviceRecordRepo) CountByCompany(companyID string) (int, error) {
	count := 0
	r.store.view(r.work, func(st *state) {
		for _, rec := range st.serviceRecs {
			if rec.CompanyID == companyID {
				count++
			}
		}
	})
	return count, nil
}

func (r *serviceRecordRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.serviceRecs, id) })
	return nil
}
