package memory

import (
	"context"
	"sort"
	"sync"

	"petcare-api/internal/domain/schedules"
)

type ScheduleRepo struct {
	mu   sync.RWMutex
	byID map[string]schedules.FeedingSchedule
}

func NewScheduleRepo() *ScheduleRepo {
	return &ScheduleRepo{byID: map[string]schedules.FeedingSchedule{}}
}

func (r *ScheduleRepo) Create(ctx context.Context, s schedules.FeedingSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	return nil
}

func (r *ScheduleRepo) Update(ctx context.Context, s schedules.FeedingSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return schedules.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (schedules.FeedingSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return schedules.FeedingSchedule{}, schedules.ErrNotFound
	}
	return s, nil
}

func (r *ScheduleRepo) ListByPet(ctx context.Context, petID string) ([]schedules.FeedingSchedule, error) {
	return r.ListByPets(ctx, []string{petID})
}

func (r *ScheduleRepo) ListByPets(ctx context.Context, petIDs []string) ([]schedules.FeedingSchedule, error) {
	want := make(map[string]bool, len(petIDs))
	for _, id := range petIDs {
		want[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schedules.FeedingSchedule, 0)
	for _, s := range r.byID {
		if want[s.PetID] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return schedules.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// deleteByPet implementa el cascade al borrar una mascota.
func (r *ScheduleRepo) deleteByPet(petID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.byID {
		if s.PetID == petID {
			delete(r.byID, id)
		}
	}
}
