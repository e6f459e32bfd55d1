package users

import "time"

// User es la cuenta dueña de las mascotas. Su id es la clave de join
// para todos los chequeos de ownership.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // nunca se expone hacia afuera

	CreatedAt time.Time
}
