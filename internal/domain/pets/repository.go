package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, userID string) ([]Pet, error)

	// Delete elimina la mascota y cascadea schedules y visits.
	Delete(ctx context.Context, id string) error
}
