package pets

import (
	"strings"
	"time"
)

// Pet es el perfil de una mascota. UserID no cambia después del alta.
type Pet struct {
	ID     string
	UserID string

	Name    string
	Species string // dog, cat, bird, etc.
	Breed   string

	Age    *int     // años
	Weight *float64 // kg

	PhotoURL string
	Tags     []string
	Notes    string

	CreatedAt time.Time
}

// Los tags viajan como lista ordenada y se guardan como un solo string
// delimitado por comas. Coma y backslash van escapados: el round-trip
// encode/decode es fiel incluso con tags que traen el delimitador.

// EncodeTags colapsa la lista a texto delimitado.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		escaped := strings.ReplaceAll(tag, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, ",", `\,`)
		parts = append(parts, escaped)
	}
	return strings.Join(parts, ",")
}

// DecodeTags reconstruye la lista original.
func DecodeTags(encoded string) []string {
	if encoded == "" {
		return []string{}
	}

	tags := make([]string, 0, 4)
	var cur strings.Builder
	escaped := false

	for _, r := range encoded {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			tags = append(tags, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	tags = append(tags, cur.String())
	return tags
}
