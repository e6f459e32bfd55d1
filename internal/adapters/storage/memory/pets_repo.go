package memory

import (
	"context"
	"sort"
	"sync"

	"petcare-api/internal/domain/pets"
)

// PetRepo conoce los repos de schedules y visits del mismo backend
// para replicar el ON DELETE CASCADE del esquema de postgres.
type PetRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet

	schedules *ScheduleRepo
	visits    *VisitRepo
}

func NewPetRepo(schedules *ScheduleRepo, visits *VisitRepo) *PetRepo {
	return &PetRepo{
		byID:      map[string]pets.Pet{},
		schedules: schedules,
		visits:    visits,
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetRepo) ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *PetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.byID[id]; !ok {
		r.mu.Unlock()
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	r.schedules.deleteByPet(id)
	r.visits.deleteByPet(id)
	return nil
}
