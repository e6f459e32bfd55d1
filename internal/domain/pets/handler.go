package pets

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-api/internal/httpx"
	"petcare-api/internal/middleware"
	"petcare-api/internal/uploads"
)

// maxUploadMemory limita el buffering en RAM del multipart; el resto va
// a archivos temporales del runtime.
const maxUploadMemory = 8 << 20

func RegisterRoutes(r chi.Router, svc *Service, photos *uploads.Store) {
	r.Route("/api/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc, photos))

		pr.Route("/{petID}", func(ir chi.Router) {
			ir.Get("/", getPetHandler(svc))
			ir.Put("/", updatePetHandler(svc, photos))
			ir.Delete("/", deletePetHandler(svc, photos))
		})
	})
}

type createPetRequest struct {
	Name    string   `json:"name"`
	Species string   `json:"species"`
	Breed   string   `json:"breed"`
	Age     *int     `json:"age"`
	Weight  *float64 `json:"weight"`
	Tags    []string `json:"tags"`
	Notes   string   `json:"notes"`
}

// updatePetRequest: punteros para PUT parcial, nil = no tocar.
type updatePetRequest struct {
	Name    *string   `json:"name"`
	Species *string   `json:"species"`
	Breed   *string   `json:"breed"`
	Age     *int      `json:"age"`
	Weight  *float64  `json:"weight"`
	Tags    *[]string `json:"tags"`
	Notes   *string   `json:"notes"`
}

type petResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	Age       *int      `json:"age"`
	Weight    *float64  `json:"weight"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Tags      []string  `json:"tags"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func createPetHandler(svc *Service, photos *uploads.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		var in CreateInput
		var staged *uploads.Staged

		if isMultipart(r) {
			parsed, st, errMsg := parsePetForm(r, photos)
			if errMsg != "" {
				httpx.WriteError(w, http.StatusBadRequest, errMsg)
				return
			}
			staged = st
			in = CreateInput{
				Name:    deref(parsed.Name),
				Species: deref(parsed.Species),
				Breed:   deref(parsed.Breed),
				Age:     parsed.Age,
				Weight:  parsed.Weight,
				Notes:   deref(parsed.Notes),
			}
			if parsed.Tags != nil {
				in.Tags = *parsed.Tags
			}
		} else {
			var req createPetRequest
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			in = CreateInput{
				Name:    req.Name,
				Species: req.Species,
				Breed:   req.Breed,
				Age:     req.Age,
				Weight:  req.Weight,
				Tags:    req.Tags,
				Notes:   req.Notes,
			}
		}

		photoURL := ""
		if staged != nil {
			photoURL = staged.URL
		}

		p, err := svc.Create(r.Context(), claims.UserID, in, photoURL)
		if err != nil {
			if staged != nil {
				staged.Discard()
			}
			writePetError(w, err)
			return
		}

		// La fila ya está persistida: recién ahora la foto staged pasa a
		// su nombre definitivo. Un crash antes de esto deja solo un temp.
		if staged != nil {
			if err := staged.Promote(); err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
		}

		httpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Pet created successfully",
			"pet":     toPetResponse(p),
		})
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"pets": out})
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writePetError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"pet": toPetResponse(p)})
	}
}

func updatePetHandler(svc *Service, photos *uploads.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		current, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writePetError(w, err)
			return
		}

		var in UpdateInput
		var staged *uploads.Staged

		if isMultipart(r) {
			parsed, st, errMsg := parsePetForm(r, photos)
			if errMsg != "" {
				httpx.WriteError(w, http.StatusBadRequest, errMsg)
				return
			}
			staged = st
			in = parsed
		} else {
			var req updatePetRequest
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			in = UpdateInput{
				Name:    req.Name,
				Species: req.Species,
				Breed:   req.Breed,
				Age:     req.Age,
				Weight:  req.Weight,
				Tags:    req.Tags,
				Notes:   req.Notes,
			}
		}

		photoURL := ""
		if staged != nil {
			photoURL = staged.URL
		}

		updated, err := svc.Update(r.Context(), current, in, photoURL)
		if err != nil {
			if staged != nil {
				staged.Discard()
			}
			writePetError(w, err)
			return
		}

		if staged != nil {
			if err := staged.Promote(); err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			// la foto anterior queda huérfana tras el update: fuera
			if current.PhotoURL != "" && current.PhotoURL != updated.PhotoURL {
				photos.Remove(current.PhotoURL)
			}
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Pet updated successfully",
			"pet":     toPetResponse(updated),
		})
	}
}

func deletePetHandler(svc *Service, photos *uploads.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writePetError(w, err)
			return
		}

		if err := svc.Delete(r.Context(), p); err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		// best effort, después del commit
		if p.PhotoURL != "" {
			photos.Remove(p.PhotoURL)
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Pet deleted successfully"})
	}
}

// parsePetForm arma un UpdateInput desde multipart/form-data. La presencia
// de cada campo en el form decide si se toca; age/weight llegan como texto
// y un valor no numérico es error de tipo.
func parsePetForm(r *http.Request, photos *uploads.Store) (UpdateInput, *uploads.Staged, string) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return UpdateInput{}, nil, "Invalid form data"
	}

	var in UpdateInput
	form := r.MultipartForm.Value

	if v, ok := formValue(form, "name"); ok {
		in.Name = &v
	}
	if v, ok := formValue(form, "species"); ok {
		in.Species = &v
	}
	if v, ok := formValue(form, "breed"); ok {
		in.Breed = &v
	}
	if v, ok := formValue(form, "notes"); ok {
		in.Notes = &v
	}
	if v, ok := formValue(form, "age"); ok {
		age, err := strconv.Atoi(v)
		if err != nil {
			return UpdateInput{}, nil, "Age must be a number"
		}
		in.Age = &age
	}
	if v, ok := formValue(form, "weight"); ok {
		weight, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return UpdateInput{}, nil, "Weight must be a number"
		}
		in.Weight = &weight
	}
	if tags, ok := form["tags"]; ok {
		copied := append([]string(nil), tags...)
		in.Tags = &copied
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		// sin foto en el form
		return in, nil, ""
	}
	defer file.Close()

	staged, err := photos.Stage(file, header.Filename)
	if err != nil {
		if errors.Is(err, uploads.ErrUnsupportedType) {
			return UpdateInput{}, nil, "Unsupported photo type. Allowed: png, jpg, jpeg, gif, webp"
		}
		return UpdateInput{}, nil, "Could not store photo"
	}
	return in, staged, ""
}

func formValue(form map[string][]string, key string) (string, bool) {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func writePetError(w http.ResponseWriter, err error) {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		httpx.WriteErrors(w, http.StatusBadRequest, verrs)
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Pet not found")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toPetResponse(p Pet) petResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return petResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Age:       p.Age,
		Weight:    p.Weight,
		PhotoURL:  p.PhotoURL,
		Tags:      tags,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
