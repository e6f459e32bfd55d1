package schedules

import "time"

// FeedingSchedule es una toma de comida recurrente de una mascota.
// PetID no cambia después del alta.
type FeedingSchedule struct {
	ID    string
	PetID string

	FoodType  string
	Amount    string // ej: "200g", "1 cup"
	Time      string // hora del día, normalizada "HH:MM"
	Frequency string // ej: "daily", "twice a day"
	Notes     string

	CreatedAt time.Time
}
