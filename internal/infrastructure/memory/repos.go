package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// --- Lotes ---

type lotRepo struct {
	store *Store
	work  *state
}

var _ repository.LotRepository = (*lotRepo)(nil)

func (r *lotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	cp := *lot
	r.store.view(r.work, func(st *state) { st.lots[lot.ID] = &cp })
	return nil
}

func (r *lotRepo) GetByID(id string) (*entity.Lot, error) {
	var out *entity.Lot
	r.store.view(r.work, func(st *state) {
		if l, ok := st.lots[id]; ok {
			cp := *l
			out = &cp
		}
	})
	return out, nil
}

func (r *lotRepo) GetByCode(lotCode string) (*entity.Lot, error) {
	var out *entity.Lot
	r.store.view(r.work, func(st *state) {
		for _, l := range st.lots {
			if l.LotCode == lotCode {
				cp := *l
				out = &cp
				return
			}
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex del Store ya serializa
// la transacción completa.
func (r *lotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	return r.GetByID(id)
}

func (r *lotRepo) UpdateQuantity(id string, quantity int) error {
	r.store.view(r.work, func(st *state) {
		if l, ok := st.lots[id]; ok {
			l.Quantity = quantity
		}
	})
	return nil
}

func (r *lotRepo) List(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	var all []*entity.Lot
	r.store.view(r.work, func(st *state) {
		for _, l := range st.lots {
			if filter.Medication != "" && !strings.Contains(strings.ToLower(l.Medication), strings.ToLower(filter.Medication)) {
				continue
			}
			if filter.LotCode != "" && !strings.Contains(strings.ToLower(l.LotCode), strings.ToLower(filter.LotCode)) {
				continue
			}
			if filter.Category != "" && l.Category != filter.Category {
				continue
			}
			if filter.ExpiryFrom != nil && l.ExpiryDate.Before(*filter.ExpiryFrom) {
				continue
			}
			if filter.ExpiryTo != nil && l.ExpiryDate.After(*filter.ExpiryTo) {
				continue
			}
			cp := *l
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ExpiryDate.Before(all[j].ExpiryDate) })
	return page(all, limit, offset), nil
}

func (r *lotRepo) ListAvailable(category string, limit, offset int) ([]*entity.Lot, error) {
	var all []*entity.Lot
	r.store.view(r.work, func(st *state) {
		for _, l := range st.lots {
			if l.Quantity <= 0 {
				continue
			}
			if category != "" && l.Category != category {
				continue
			}
			cp := *l
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ExpiryDate.Before(all[j].ExpiryDate) })
	return page(all, limit, offset), nil
}

func (r *lotRepo) ListExpiringBefore(limit time.Time) ([]*entity.Lot, error) {
	var all []*entity.Lot
	r.store.view(r.work, func(st *state) {
		for _, l := range st.lots {
			if l.Quantity > 0 && !l.ExpiryDate.After(limit) {
				cp := *l
				all = append(all, &cp)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ExpiryDate.Before(all[j].ExpiryDate) })
	return all, nil
}

func (r *lotRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.lots, id) })
	return nil
}

// --- Movimientos ---

type movementRepo struct {
	store *Store
	work  *state
}

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.store.view(r.work, func(st *state) {
		st.movements[m.ID] = &cp
		st.movementOrder = append(st.movementOrder, m.ID)
	})
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.store.view(r.work, func(st *state) {
		if m, ok := st.movements[id]; ok {
			cp := *m
			out = &cp
		}
	})
	return out, nil
}

func (r *movementRepo) ListByLot(lotID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(&lotID, from, to, limit, offset)
}

func (r *movementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(nil, from, to, limit, offset)
}

func (r *movementRepo) list(lotID *string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var all []*entity.Movement
	r.store.view(r.work, func(st *state) {
		// Recorre en orden de inserción inverso (más reciente primero).
		for i := len(st.movementOrder) - 1; i >= 0; i-- {
			m := st.movements[st.movementOrder[i]]
			if m == nil {
				continue
			}
			if lotID != nil && m.LotID != *lotID {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			cp := *m
			all = append(all, &cp)
		}
	})
	return page(all, limit, offset), nil
}

func (r *movementRepo) CountByLot(lotID string) (int, error) {
	count := 0
	r.store.view(r.work, func(st *state) {
		for _, m := range st.movements {
			if m.LotID == lotID {
				count++
			}
		}
	})
	return count, nil
}

// --- Enlaces de consumo ---

type consumptionRepo struct {
	store *Store
	work  *state
}

var _ repository.ConsumptionRepository = (*consumptionRepo)(nil)

func (r *consumptionRepo) Create(link *entity.ConsumptionLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	cp := *link
	r.store.view(r.work, func(st *state) { st.links[link.ID] = &cp })
	return nil
}

func (r *consumptionRepo) GetByID(id string) (*entity.ConsumptionLink, error) {
	var out *entity.ConsumptionLink
	r.store.view(r.work, func(st *state) {
		if l, ok := st.links[id]; ok {
			cp := *l
			out = &cp
		}
	})
	return out, nil
}

func (r *consumptionRepo) Update(link *entity.ConsumptionLink) error {
	cp := *link
	r.store.view(r.work, func(st *state) { st.links[link.ID] = &cp })
	return nil
}

func (r *consumptionRepo) Delete(id string) error {
	r.store.view(r.work, func(st *state) { delete(st.links, id) })
	return nil
}

func (r *consumptionRepo) ListByEvent(eventKind, eventID string) ([]*entity.ConsumptionLink, error) {
	var all []*entity.ConsumptionLink
	r.store.view(r.work, func(st *state) {
		for _, l := range st.links {
			if l.EventKind == eventKind && l.EventID == eventID {
				cp := *l
				all = append(all, &cp)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *consumptionRepo) CountByLot(lotID string) (int, error) {
	count := 0
	r.store.view(r.work, func(st *state) {
		for _, l := range st.links {
			if l.LotID == lotID {
				count++
			}
		}
	})
	return count, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
