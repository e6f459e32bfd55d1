package visits

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-api/internal/domain/pets"
	"petcare-api/internal/httpx"
	"petcare-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/api/pets/{petID}/visits", func(vr chi.Router) {
		vr.Get("/", listVisitsHandler(svc, petsSvc))
		vr.Post("/", createVisitHandler(svc, petsSvc))
	})

	r.Route("/api/visits/{visitID}", func(vr chi.Router) {
		vr.Get("/", getVisitHandler(svc))
		vr.Put("/", updateVisitHandler(svc))
		vr.Delete("/", deleteVisitHandler(svc))
	})
}

type createVisitRequest struct {
	VisitDate   string `json:"visit_date"`
	VetName     string `json:"vet_name"`
	ClinicName  string `json:"clinic_name"`
	Reason      string `json:"reason"`
	Diagnosis   string `json:"diagnosis"`
	Treatment   string `json:"treatment"`
	Medications string `json:"medications"`
	Notes       string `json:"notes"`
}

// updateVisitRequest: punteros para PUT parcial, nil = no tocar.
type updateVisitRequest struct {
	VisitDate   *string `json:"visit_date"`
	VetName     *string `json:"vet_name"`
	ClinicName  *string `json:"clinic_name"`
	Reason      *string `json:"reason"`
	Diagnosis   *string `json:"diagnosis"`
	Treatment   *string `json:"treatment"`
	Medications *string `json:"medications"`
	Notes       *string `json:"notes"`
}

type visitResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	VisitDate   time.Time `json:"visit_date"`
	VetName     string    `json:"vet_name,omitempty"`
	ClinicName  string    `json:"clinic_name,omitempty"`
	Reason      string    `json:"reason"`
	Diagnosis   string    `json:"diagnosis,omitempty"`
	Treatment   string    `json:"treatment,omitempty"`
	Medications string    `json:"medications,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func createVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		pet, err := petsSvc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Pet not found")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		var req createVisitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		v, err := svc.Create(r.Context(), pet.ID, CreateInput{
			VisitDate:   req.VisitDate,
			VetName:     req.VetName,
			ClinicName:  req.ClinicName,
			Reason:      req.Reason,
			Diagnosis:   req.Diagnosis,
			Treatment:   req.Treatment,
			Medications: req.Medications,
			Notes:       req.Notes,
		})
		if err != nil {
			writeVisitError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Visit created successfully",
			"visit":   toVisitResponse(v),
		})
	}
}

func listVisitsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		pet, err := petsSvc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Pet not found")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		items, err := svc.ListByPet(r.Context(), pet.ID)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"visits": out})
	}
}

func getVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		v, err := svc.GetOwned(r.Context(), chi.URLParam(r, "visitID"), claims.UserID)
		if err != nil {
			writeVisitError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"visit": toVisitResponse(v)})
	}
}

func updateVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		current, err := svc.GetOwned(r.Context(), chi.URLParam(r, "visitID"), claims.UserID)
		if err != nil {
			writeVisitError(w, err)
			return
		}

		var req updateVisitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		updated, err := svc.Update(r.Context(), current, UpdateInput{
			VisitDate:   req.VisitDate,
			VetName:     req.VetName,
			ClinicName:  req.ClinicName,
			Reason:      req.Reason,
			Diagnosis:   req.Diagnosis,
			Treatment:   req.Treatment,
			Medications: req.Medications,
			Notes:       req.Notes,
		})
		if err != nil {
			writeVisitError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Visit updated successfully",
			"visit":   toVisitResponse(updated),
		})
	}
}

func deleteVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		v, err := svc.GetOwned(r.Context(), chi.URLParam(r, "visitID"), claims.UserID)
		if err != nil {
			writeVisitError(w, err)
			return
		}

		if err := svc.Delete(r.Context(), v); err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Visit deleted successfully"})
	}
}

func writeVisitError(w http.ResponseWriter, err error) {
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Visit not found")
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "Unauthorized")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toVisitResponse(v VetVisit) visitResponse {
	return visitResponse{
		ID:          v.ID,
		PetID:       v.PetID,
		VisitDate:   v.VisitDate,
		VetName:     v.VetName,
		ClinicName:  v.ClinicName,
		Reason:      v.Reason,
		Diagnosis:   v.Diagnosis,
		Treatment:   v.Treatment,
		Medications: v.Medications,
		Notes:       v.Notes,
		CreatedAt:   v.CreatedAt,
	}
}
