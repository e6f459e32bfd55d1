package pets

import (
	"context"
	"errors"
)

// GetOwned resuelve una mascota ligada al usuario autenticado.
// Inexistente o de otro usuario da lo mismo: ErrNotFound. La distinción
// 404/403 solo aplica a los sub-recursos (schedules/visits).
func (s *Service) GetOwned(ctx context.Context, petID, userID string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	if p.UserID != userID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

// OwnerOf expone el dueño de una mascota sin exponer el resto del perfil.
// Schedules y visits lo consumen vía interfaz local para evitar ciclos
// de imports.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.UserID, nil
}
