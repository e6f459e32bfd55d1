package schedules

import (
	"context"
	"errors"
)

// GetOwned resuelve un schedule ligado al usuario autenticado en dos
// pasos: primero existencia (404), después propiedad vía la mascota
// (403). A diferencia de pets, acá sí se distingue "no existe" de
// "no es tuyo".
func (s *Service) GetOwned(ctx context.Context, scheduleID, userID string) (FeedingSchedule, error) {
	sched, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return FeedingSchedule{}, ErrNotFound
		}
		return FeedingSchedule{}, err
	}

	owner, err := s.petOwners.OwnerOf(ctx, sched.PetID)
	if err != nil {
		return FeedingSchedule{}, err
	}
	if owner != userID {
		return FeedingSchedule{}, ErrForbidden
	}
	return sched, nil
}
