// Package httpx agrupa los helpers de respuesta JSON que antes vivían
// duplicados en cada módulo. Con cuatro módulos ya conviene el helper común.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError responde {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// WriteErrors responde {"errors": [...]} (validación acumulada de pets).
func WriteErrors(w http.ResponseWriter, status int, msgs []string) {
	WriteJSON(w, status, map[string][]string{"errors": msgs})
}

// DecodeJSON decodifica el body rechazando campos desconocidos: los
// payloads con forma inesperada se cortan en el borde, no en los servicios.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// un solo objeto por body
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
