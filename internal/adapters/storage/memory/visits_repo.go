package memory

import (
	"context"
	"sort"
	"sync"

	"petcare-api/internal/domain/visits"
)

type VisitRepo struct {
	mu   sync.RWMutex
	byID map[string]visits.VetVisit
}

func NewVisitRepo() *VisitRepo {
	return &VisitRepo{byID: map[string]visits.VetVisit{}}
}

func (r *VisitRepo) Create(ctx context.Context, v visits.VetVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[v.ID] = v
	return nil
}

func (r *VisitRepo) Update(ctx context.Context, v visits.VetVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[v.ID]; !ok {
		return visits.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *VisitRepo) GetByID(ctx context.Context, id string) (visits.VetVisit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[id]
	if !ok {
		return visits.VetVisit{}, visits.ErrNotFound
	}
	return v, nil
}

// ListByPet devuelve las visitas más recientes primero.
func (r *VisitRepo) ListByPet(ctx context.Context, petID string) ([]visits.VetVisit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]visits.VetVisit, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitDate.After(out[j].VisitDate) })
	return out, nil
}

func (r *VisitRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return visits.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *VisitRepo) deleteByPet(petID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.byID {
		if v.PetID == petID {
			delete(r.byID, id)
		}
	}
}
