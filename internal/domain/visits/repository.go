package visits

import "context"

type Repository interface {
	Create(ctx context.Context, v VetVisit) error
	Update(ctx context.Context, v VetVisit) error
	GetByID(ctx context.Context, id string) (VetVisit, error)

	// ListByPet devuelve las visitas más recientes primero
	// (visit_date descendente). Los handlers dependen del orden.
	ListByPet(ctx context.Context, petID string) ([]VetVisit, error)

	Delete(ctx context.Context, id string) error
}
