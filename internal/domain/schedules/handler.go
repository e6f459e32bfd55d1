package schedules

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-api/internal/domain/pets"
	"petcare-api/internal/httpx"
	"petcare-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/api/pets/{petID}/schedule", func(sr chi.Router) {
		sr.Get("/", listSchedulesHandler(svc, petsSvc))
		sr.Post("/", createScheduleHandler(svc, petsSvc))
	})

	r.Route("/api/schedule", func(sr chi.Router) {
		sr.Put("/{scheduleID}", updateScheduleHandler(svc))
		sr.Delete("/{scheduleID}", deleteScheduleHandler(svc))

		sr.Get("/day/{date}", dayViewHandler(svc, petsSvc))
		sr.Get("/month/{year}/{month}", monthViewHandler(svc, petsSvc))
	})
}

type createScheduleRequest struct {
	FoodType  string `json:"food_type"`
	Amount    string `json:"amount"`
	Time      string `json:"time"`
	Frequency string `json:"frequency"`
	Notes     string `json:"notes"`
}

// updateScheduleRequest: punteros para PUT parcial, nil = no tocar.
type updateScheduleRequest struct {
	FoodType  *string `json:"food_type"`
	Amount    *string `json:"amount"`
	Time      *string `json:"time"`
	Frequency *string `json:"frequency"`
	Notes     *string `json:"notes"`
}

type scheduleResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	FoodType  string    `json:"food_type"`
	Amount    string    `json:"amount,omitempty"`
	Time      string    `json:"time"`
	Frequency string    `json:"frequency,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func createScheduleHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		// la mascota del path también se resuelve como recurso propio
		pet, err := petsSvc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Pet not found")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		var req createScheduleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		sched, err := svc.Create(r.Context(), pet.ID, CreateInput{
			FoodType:  req.FoodType,
			Amount:    req.Amount,
			Time:      req.Time,
			Frequency: req.Frequency,
			Notes:     req.Notes,
		})
		if err != nil {
			writeScheduleError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":  "Schedule created successfully",
			"schedule": toScheduleResponse(sched),
		})
	}
}

func listSchedulesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"schedules": toScheduleResponses(items),
		})
	}
}

func updateScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		current, err := svc.GetOwned(r.Context(), chi.URLParam(r, "scheduleID"), claims.UserID)
		if err != nil {
			writeScheduleError(w, err)
			return
		}

		var req updateScheduleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		updated, err := svc.Update(r.Context(), current, UpdateInput{
			FoodType:  req.FoodType,
			Amount:    req.Amount,
			Time:      req.Time,
			Frequency: req.Frequency,
			Notes:     req.Notes,
		})
		if err != nil {
			writeScheduleError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message":  "Schedule updated successfully",
			"schedule": toScheduleResponse(updated),
		})
	}
}

func deleteScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		sched, err := svc.GetOwned(r.Context(), chi.URLParam(r, "scheduleID"), claims.UserID)
		if err != nil {
			writeScheduleError(w, err)
			return
		}

		if err := svc.Delete(r.Context(), sched); err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Schedule deleted successfully"})
	}
}

// dayViewHandler devuelve todos los schedules del usuario agrupados por
// nombre de mascota. La fecha valida el parámetro pero no filtra: los
// schedules son recurrentes, la vista de un día muestra todas las tomas.
func dayViewHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		raw := chi.URLParam(r, "date")
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}

		grouped, err := groupedSchedules(r, svc, petsSvc, claims.UserID)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"date":      raw,
			"schedules": grouped,
		})
	}
}

func monthViewHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		year, err := strconv.Atoi(chi.URLParam(r, "year"))
		if err != nil || year < 1 {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		month, err := strconv.Atoi(chi.URLParam(r, "month"))
		if err != nil || month < 1 || month > 12 {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid month")
			return
		}

		grouped, err := groupedSchedules(r, svc, petsSvc, claims.UserID)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"year":      year,
			"month":     month,
			"schedules": grouped,
		})
	}
}

// groupedSchedules junta los schedules de todas las mascotas del usuario
// y los agrupa por nombre, ordenados por hora dentro de cada grupo.
func groupedSchedules(r *http.Request, svc *Service, petsSvc *pets.Service, userID string) (map[string][]scheduleResponse, error) {
	owned, err := petsSvc.ListByOwner(r.Context(), userID)
	if err != nil {
		return nil, err
	}

	petIDs := make([]string, 0, len(owned))
	nameByID := make(map[string]string, len(owned))
	for _, p := range owned {
		petIDs = append(petIDs, p.ID)
		nameByID[p.ID] = p.Name
	}

	items, err := svc.ListByPets(r.Context(), petIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]scheduleResponse)
	for _, sched := range items {
		name := nameByID[sched.PetID]
		grouped[name] = append(grouped[name], toScheduleResponse(sched))
	}
	for name := range grouped {
		group := grouped[name]
		sort.Slice(group, func(i, j int) bool { return group[i].Time < group[j].Time })
	}
	return grouped, nil
}

func writeScheduleError(w http.ResponseWriter, err error) {
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Schedule not found")
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "Unauthorized")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toScheduleResponse(s FeedingSchedule) scheduleResponse {
	return scheduleResponse{
		ID:        s.ID,
		PetID:     s.PetID,
		FoodType:  s.FoodType,
		Amount:    s.Amount,
		Time:      s.Time,
		Frequency: s.Frequency,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

func toScheduleResponses(items []FeedingSchedule) []scheduleResponse {
	out := make([]scheduleResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toScheduleResponse(s))
	}
	return out
}
