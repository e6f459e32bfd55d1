package visits

import "time"

// VetVisit es una consulta veterinaria puntual de una mascota.
// PetID no cambia después del alta.
type VetVisit struct {
	ID    string
	PetID string

	VisitDate   time.Time
	VetName     string
	ClinicName  string
	Reason      string
	Diagnosis   string
	Treatment   string
	Medications string
	Notes       string

	CreatedAt time.Time
}
