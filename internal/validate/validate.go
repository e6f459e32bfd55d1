package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cada validador devuelve (ok, mensaje). El mensaje llega tal cual al
// cliente, así que no tocarlo sin revisar los handlers que lo exponen.

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

const passwordSymbols = "!@#$%^&*(),.?\":{}|<>_-+=[]\\/~`"

// Age valida la edad en años. nil = no enviada, válida.
func Age(age *int) (bool, string) {
	if age == nil {
		return true, ""
	}
	if *age < 0 {
		return false, "Age cannot be negative"
	}
	if *age > 50 {
		return false, "Age seems unrealistic (max 50 years)"
	}
	return true, ""
}

// Weight valida el peso en kg. nil = no enviado, válido.
func Weight(weight *float64) (bool, string) {
	if weight == nil {
		return true, ""
	}
	if *weight <= 0 {
		return false, "Weight must be positive"
	}
	if *weight > 500 {
		return false, "Weight seems unrealistic (max 500kg)"
	}
	return true, ""
}

func Email(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRe.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

func Username(username string) (bool, string) {
	if username == "" {
		return false, "Username is required"
	}
	if len(username) < 3 {
		return false, "Username must be at least 3 characters"
	}
	if len(username) > 50 {
		return false, "Username must be at most 50 characters"
	}
	if !usernameRe.MatchString(username) {
		return false, "Username can only contain letters, numbers, underscore and dash"
	}
	return true, ""
}

// Password exige largo [8,100] y al menos una mayúscula, una minúscula,
// un dígito y un símbolo. Se devuelve solo el primer chequeo que falla,
// en ese orden.
func Password(password string) (bool, string) {
	if password == "" {
		return false, "Password is required"
	}
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if len(password) > 100 {
		return false, "Password is too long (max 100 characters)"
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, c):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return false, "Password must contain at least one number"
	}
	if !hasSymbol {
		return false, "Password must contain at least one special character (!@#$%^&*...)"
	}
	return true, ""
}

// Los layouts que acepta Date. RFC3339 cubre el sufijo Z y offsets
// explícitos; el resto son las variantes ISO sin zona.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Date parsea un datetime ISO-8601. Devuelve el valor parseado.
func Date(value, field string) (time.Time, bool, string) {
	if value == "" {
		return time.Time{}, false, field + " is required"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true, ""
		}
	}
	return time.Time{}, false, "Invalid " + field + " format. Use ISO format (YYYY-MM-DDTHH:MM:SS)"
}

// NotFuture acepta fechas hasta `now` inclusive.
func NotFuture(t, now time.Time, field string) (bool, string) {
	if t.After(now) {
		return false, field + " cannot be in the future"
	}
	return true, ""
}

// TimeOfDay parsea "HH:MM" y devuelve hora y minuto.
func TimeOfDay(value string) (int, int, bool, string) {
	if value == "" {
		return 0, 0, false, "Time is required"
	}

	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, false, "Invalid time format. Use HH:MM"
	}

	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false, "Invalid time format. Use HH:MM"
	}

	if hour < 0 || hour > 23 {
		return 0, 0, false, "Hour must be between 0 and 23"
	}
	if minute < 0 || minute > 59 {
		return 0, 0, false, "Minute must be between 0 and 59"
	}
	return hour, minute, true, ""
}

// StringLength valida el largo de un campo opcional. nil = válido.
// min/max en 0 significa sin cota.
func StringLength(value *string, field string, min, max int) (bool, string) {
	if value == nil {
		return true, ""
	}

	length := len(*value)
	if min > 0 && length < min {
		return false, fmt.Sprintf("%s must be at least %d characters", field, min)
	}
	if max > 0 && length > max {
		return false, fmt.Sprintf("%s must be at most %d characters", field, max)
	}
	return true, ""
}
