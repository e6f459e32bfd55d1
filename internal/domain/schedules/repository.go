package schedules

import "context"

type Repository interface {
	Create(ctx context.Context, s FeedingSchedule) error
	Update(ctx context.Context, s FeedingSchedule) error
	GetByID(ctx context.Context, id string) (FeedingSchedule, error)
	ListByPet(ctx context.Context, petID string) ([]FeedingSchedule, error)

	// ListByPets es la variante bulk para las vistas por día/mes.
	ListByPets(ctx context.Context, petIDs []string) ([]FeedingSchedule, error)

	Delete(ctx context.Context, id string) error
}
