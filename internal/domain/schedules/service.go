package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petcare-api/internal/validate"
)

var (
	ErrNotFound = errors.New("schedule not found")

	// ErrForbidden: el schedule existe pero su mascota es de otro usuario.
	// Nunca se colapsa con ErrNotFound (404 vs 403).
	ErrForbidden = errors.New("unauthorized")
)

type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// PetOwnerLookup evita importar el paquete pets (rompe ciclos).
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo      Repository
	petOwners PetOwnerLookup
	now       func() time.Time
}

func NewService(repo Repository, petOwners PetOwnerLookup) *Service {
	return &Service{
		repo:      repo,
		petOwners: petOwners,
		now:       time.Now,
	}
}

type CreateInput struct {
	FoodType  string
	Amount    string
	Time      string
	Frequency string
	Notes     string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (FeedingSchedule, error) {
	if in.FoodType == "" || in.Time == "" {
		return FeedingSchedule{}, ValidationError{Msg: "food_type and time are required"}
	}
	if ok, msg := validate.StringLength(&in.FoodType, "Food type", 1, 100); !ok {
		return FeedingSchedule{}, ValidationError{Msg: msg}
	}

	hour, minute, ok, msg := validate.TimeOfDay(in.Time)
	if !ok {
		return FeedingSchedule{}, ValidationError{Msg: msg}
	}

	sched := FeedingSchedule{
		ID:        uuid.NewString(),
		PetID:     petID,
		FoodType:  in.FoodType,
		Amount:    in.Amount,
		Time:      formatTime(hour, minute),
		Frequency: in.Frequency,
		Notes:     in.Notes,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, sched); err != nil {
		return FeedingSchedule{}, err
	}
	return sched, nil
}

// UpdateInput: punteros para update parcial, nil = no tocar.
type UpdateInput struct {
	FoodType  *string
	Amount    *string
	Time      *string
	Frequency *string
	Notes     *string
}

// Update muta solo los campos presentes; time se re-valida y re-parsea.
func (s *Service) Update(ctx context.Context, sched FeedingSchedule, in UpdateInput) (FeedingSchedule, error) {
	if in.FoodType != nil {
		sched.FoodType = *in.FoodType
	}
	if in.Amount != nil {
		sched.Amount = *in.Amount
	}
	if in.Time != nil {
		hour, minute, ok, msg := validate.TimeOfDay(*in.Time)
		if !ok {
			return FeedingSchedule{}, ValidationError{Msg: msg}
		}
		sched.Time = formatTime(hour, minute)
	}
	if in.Frequency != nil {
		sched.Frequency = *in.Frequency
	}
	if in.Notes != nil {
		sched.Notes = *in.Notes
	}

	if err := s.repo.Update(ctx, sched); err != nil {
		return FeedingSchedule{}, err
	}
	return sched, nil
}

func (s *Service) Delete(ctx context.Context, sched FeedingSchedule) error {
	return s.repo.Delete(ctx, sched.ID)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]FeedingSchedule, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) ListByPets(ctx context.Context, petIDs []string) ([]FeedingSchedule, error) {
	if len(petIDs) == 0 {
		return []FeedingSchedule{}, nil
	}
	return s.repo.ListByPets(ctx, petIDs)
}

func formatTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
