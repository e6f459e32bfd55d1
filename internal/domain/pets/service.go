package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare-api/internal/validate"
)

// ErrNotFound cubre tanto "no existe" como "no es tuya": para mascotas no
// se distingue, el caller ve 404 en ambos casos.
var ErrNotFound = errors.New("pet not found")

// ValidationErrors acumula TODAS las fallas de validación de un payload.
// Política deliberada de este servicio: a diferencia de auth, acá no se
// corta en la primera.
type ValidationErrors []string

func (e ValidationErrors) Error() string { return strings.Join(e, "; ") }

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	Age     *int
	Weight  *float64
	Tags    []string
	Notes   string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput, photoURL string) (Pet, error) {
	if in.Name == "" || in.Species == "" {
		return Pet{}, ValidationErrors{"Name and species are required"}
	}

	var errs ValidationErrors
	if ok, msg := validate.StringLength(&in.Name, "Name", 1, 100); !ok {
		errs = append(errs, msg)
	}
	if ok, msg := validate.StringLength(&in.Species, "Species", 1, 50); !ok {
		errs = append(errs, msg)
	}
	if ok, msg := validate.Age(in.Age); !ok {
		errs = append(errs, msg)
	}
	if ok, msg := validate.Weight(in.Weight); !ok {
		errs = append(errs, msg)
	}
	if len(errs) > 0 {
		return Pet{}, errs
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	p := Pet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      in.Name,
		Species:   in.Species,
		Breed:     in.Breed,
		Age:       in.Age,
		Weight:    in.Weight,
		PhotoURL:  photoURL,
		Tags:      tags,
		Notes:     in.Notes,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// UpdateInput: punteros para update parcial real, nil = no tocar.
type UpdateInput struct {
	Name    *string
	Species *string
	Breed   *string
	Age     *int
	Weight  *float64
	Tags    *[]string
	Notes   *string
}

// Update muta solo los campos presentes. El chequeo de requeridos se
// saltea (update parcial); photoURL no vacío reemplaza la foto guardada,
// vacío la deja como está.
func (s *Service) Update(ctx context.Context, p Pet, in UpdateInput, photoURL string) (Pet, error) {
	var errs ValidationErrors
	if ok, msg := validate.StringLength(in.Name, "Name", 1, 100); !ok {
		errs = append(errs, msg)
	}
	if ok, msg := validate.StringLength(in.Species, "Species", 1, 50); !ok {
		errs = append(errs, msg)
	}
	if ok, msg := validate.Age(in.Age); !ok {
		errs = append(errs, msg)
	}
	if ok, msg := validate.Weight(in.Weight); !ok {
		errs = append(errs, msg)
	}
	if len(errs) > 0 {
		return Pet{}, errs
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Species != nil {
		p.Species = *in.Species
	}
	if in.Breed != nil {
		p.Breed = *in.Breed
	}
	if in.Age != nil {
		p.Age = in.Age
	}
	if in.Weight != nil {
		p.Weight = in.Weight
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if photoURL != "" {
		p.PhotoURL = photoURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la mascota; el repo cascadea schedules y visits.
func (s *Service) Delete(ctx context.Context, p Pet) error {
	return s.repo.Delete(ctx, p.ID)
}

func (s *Service) ListByOwner(ctx context.Context, userID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, userID)
}
