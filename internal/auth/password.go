package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Costo bcrypt. 12 equilibra seguridad y latencia de login.
const bcryptCost = 12

var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword genera el hash salteado de la contraseña.
// Nunca se persiste el texto plano.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara una contraseña contra su hash almacenado.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
