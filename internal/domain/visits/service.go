package visits

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"petcare-api/internal/validate"
)

var (
	ErrNotFound = errors.New("visit not found")

	// ErrForbidden: la visita existe pero su mascota es de otro usuario.
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
	VisitDate   string
	VetName     string
	ClinicName  string
	Reason      string
	Diagnosis   string
	Treatment   string
	Medications string
	Notes       string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (VetVisit, error) {
	if in.VisitDate == "" || in.Reason == "" {
		return VetVisit{}, ValidationError{Msg: "visit_date and reason are required"}
	}
	if ok, msg := validate.StringLength(&in.Reason, "Reason", 1, 200); !ok {
		return VetVisit{}, ValidationError{Msg: msg}
	}

	visitDate, ok, msg := validate.Date(in.VisitDate, "Visit date")
	if !ok {
		return VetVisit{}, ValidationError{Msg: msg}
	}
	if ok, msg := validate.NotFuture(visitDate, s.now(), "Visit date"); !ok {
		return VetVisit{}, ValidationError{Msg: msg}
	}

	v := VetVisit{
		ID:          uuid.NewString(),
		PetID:       petID,
		VisitDate:   visitDate,
		VetName:     in.VetName,
		ClinicName:  in.ClinicName,
		Reason:      in.Reason,
		Diagnosis:   in.Diagnosis,
		Treatment:   in.Treatment,
		Medications: in.Medications,
		Notes:       in.Notes,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

// UpdateInput: punteros para update parcial, nil = no tocar.
type UpdateInput struct {
	VisitDate   *string
	VetName     *string
	ClinicName  *string
	Reason      *string
	Diagnosis   *string
	Treatment   *string
	Medications *string
	Notes       *string
}

// Update muta solo los campos presentes; visit_date se re-parsea y se
// vuelve a chequear contra el reloj.
func (s *Service) Update(ctx context.Context, v VetVisit, in UpdateInput) (VetVisit, error) {
	if in.VisitDate != nil {
		visitDate, ok, msg := validate.Date(*in.VisitDate, "Visit date")
		if !ok {
			return VetVisit{}, ValidationError{Msg: msg}
		}
		if ok, msg := validate.NotFuture(visitDate, s.now(), "Visit date"); !ok {
			return VetVisit{}, ValidationError{Msg: msg}
		}
		v.VisitDate = visitDate
	}
	if in.Reason != nil {
		if ok, msg := validate.StringLength(in.Reason, "Reason", 1, 200); !ok {
			return VetVisit{}, ValidationError{Msg: msg}
		}
		v.Reason = *in.Reason
	}
	if in.VetName != nil {
		v.VetName = *in.VetName
	}
	if in.ClinicName != nil {
		v.ClinicName = *in.ClinicName
	}
	if in.Diagnosis != nil {
		v.Diagnosis = *in.Diagnosis
	}
	if in.Treatment != nil {
		v.Treatment = *in.Treatment
	}
	if in.Medications != nil {
		v.Medications = *in.Medications
	}
	if in.Notes != nil {
		v.Notes = *in.Notes
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, v VetVisit) error {
	return s.repo.Delete(ctx, v.ID)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]VetVisit, error) {
	return s.repo.ListByPet(ctx, petID)
}
