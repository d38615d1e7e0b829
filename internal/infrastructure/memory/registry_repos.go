package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// --- Tutores ---

type tutorRepo struct {
	store *Store
	work  *state
}

var _ repository.TutorRepository = (*tutorRepo)(nil)

func (r *tutorRepo) Create(t *entity.Tutor) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	r.store.view(r.work, func(st *state) { st.tutors[t.ID] = &cp })
	return nil
}

func (r *tutorRepo) GetByID(id string) (*entity.Tutor, error) {
	var out *entity.Tutor
	r.store.view(r.work, func(st *state) {
		if t, ok := st.tutors[id]; ok {
			cp := *t
			out = &cp
		}
	})
	return out, nil
}

func (r *tutorRepo) GetByCPF(cpf string) (*entity.Tutor, error) {
	var out *entity.Tutor
	r.store.view(r.work, func(st *state) {
		for _, t := range st.tutors {
			if t.CPF == cpf {
				cp := *t
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *tutorRepo) Update(t *entity.Tutor) error {
	cp := *t
	r.store.view(r.work, func(st *state) { st.tutors[t.ID] = &cp })
	return nil
}

func (r *tutorRepo) List(limit, offset int) ([]*entity.Tutor, error) {
	var all []*entity.Tutor
	r.store.view(r.work, func(st *state) {
		for _, t := range st.tutors {
			cp := *t
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *tutorRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.tutors, id) })
	return nil
}

// --- Animales ---

type animalRepo struct {
	store *Store
	work  *state
}

var _ repository.AnimalRepository = (*animalRepo)(nil)

func (r *animalRepo) Create(a *entity.Animal) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	r.store.view(r.work, func(st *state) { st.animals[a.ID] = &cp })
	return nil
}

func (r *animalRepo) GetByID(id string) (*entity.Animal, error) {
	var out *entity.Animal
	r.store.view(r.work, func(st *state) {
		if a, ok := st.animals[id]; ok {
			cp := *a
			out = &cp
		}
	})
	return out, nil
}

func (r *animalRepo) Update(a *entity.Animal) error {
	cp := *a
	r.store.view(r.work, func(st *state) { st.animals[a.ID] = &cp })
	return nil
}

func (r *animalRepo) ListByTutor(tutorID string, limit, offset int) ([]*entity.Animal, error) {
	var all []*entity.Animal
	r.store.view(r.work, func(st *state) {
		for _, a := range st.animals {
			if a.TutorID == tutorID {
				cp := *a
				all = append(all, &cp)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *animalRepo) List(limit, offset int) ([]*entity.Animal, error) {
	var all []*entity.Animal
	r.store.view(r.work, func(st *state) {
		for _, a := range st.animals {
			cp := *a
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *animalRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.animals, id) })
	return nil
}

// --- Veterinarios ---

type vetRepo struct {
	store *Store
	work  *state
}

var _ repository.VeterinarianRepository = (*vetRepo)(nil)

func (r *vetRepo) Create(v *entity.Veterinarian) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	cp := *v
	r.store.view(r.work, func(st *state) { st.vets[v.ID] = &cp })
	return nil
}

func (r *vetRepo) GetByID(id string) (*entity.Veterinarian, error) {
	var out *entity.Veterinarian
	r.store.view(r.work, func(st *state) {
		if v, ok := st.vets[id]; ok {
			cp := *v
			out = &cp
		}
	})
	return out, nil
}

func (r *vetRepo) Update(v *entity.Veterinarian) error {
	cp := *v
	r.store.view(r.work, func(st *state) { st.vets[v.ID] = &cp })
	return nil
}

func (r *vetRepo) List(limit, offset int) ([]*entity.Veterinarian, error) {
	var all []*entity.Veterinarian
	r.store.view(r.work, func(st *state) {
		for _, v := range st.vets {
			cp := *v
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *vetRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.vets, id) })
	return nil
}

// --- Usuarios ---

type userRepo struct {
	store *Store
	work  *state
}

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	r.store.view(r.work, func(st *state) { st.users[u.ID] = &cp })
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	var out *entity.User
	r.store.view(r.work, func(st *state) {
		if u, ok := st.users[id]; ok {
			cp := *u
			out = &cp
		}
	})
	return out, nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	var out *entity.User
	r.store.view(r.work, func(st *state) {
		for _, u := range st.users {
			if u.Email == email {
				cp := *u
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *userRepo) Update(u *entity.User) error {
	cp := *u
	r.store.view(r.work, func(st *state) { st.users[u.ID] = &cp })
	return nil
}

func (r *userRepo) List(limit, offset int) ([]*entity.User, error) {
	var all []*entity.User
	r.store.view(r.work, func(st *state) {
		for _, u := range st.users {
			cp := *u
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return page(all, limit, offset), nil
}

func (r *userRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.users, id) })
	return nil
}
