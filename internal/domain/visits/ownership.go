package visits

import (
	"context"
	"errors"
)

// GetOwned resuelve una visita ligada al usuario autenticado en dos
// pasos: primero existencia (404), después propiedad vía la mascota
// (403).
func (s *Service) GetOwned(ctx context.Context, visitID, userID string) (VetVisit, error) {
	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return VetVisit{}, ErrNotFound
		}
		return VetVisit{}, err
	}

	owner, err := s.petOwners.OwnerOf(ctx, v.PetID)
	if err != nil {
		return VetVisit{}, err
	}
	if owner != userID {
		return VetVisit{}, ErrForbidden
	}
	return v, nil
}
