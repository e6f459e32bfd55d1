package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedType: la extensión o el contenido real no es una imagen
// de las permitidas.
var ErrUnsupportedType = errors.New("unsupported file type")

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var allowedMIMEs = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Store guarda fotos de mascotas en disco y las sirve bajo /uploads/.
type Store struct {
	dir string
	now func() time.Time
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir devuelve el directorio raíz del store, para montar el fileserver.
func (s *Store) Dir() string { return s.dir }

// Staged es una foto escrita a un archivo temporal que todavía no tiene
// nombre definitivo. Promote se llama recién después de persistir la
// fila que la referencia; Discard limpia el temporal si algo falló.
type Staged struct {
	URL string

	tempPath  string
	finalPath string
}

// Stage valida y escribe el archivo a un temporal dentro del store.
// La extensión se chequea primero y el contenido real después: un .png
// que no es PNG se rechaza igual.
func (s *Store) Stage(file multipart.File, filename string) (*Staged, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return nil, ErrUnsupportedType
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("uploads: detect type: %w", err)
	}
	if !allowedMIMEs[mtype.String()] {
		return nil, ErrUnsupportedType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("uploads: rewind: %w", err)
	}

	finalName := s.now().Format("20060102_150405") + "_" + sanitizeName(filename)
	tmp, err := os.CreateTemp(s.dir, ".incoming-*")
	if err != nil {
		return nil, fmt.Errorf("uploads: create temp: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("uploads: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("uploads: close temp: %w", err)
	}

	return &Staged{
		URL:       "/uploads/" + finalName,
		tempPath:  tmp.Name(),
		finalPath: filepath.Join(s.dir, finalName),
	}, nil
}

// Promote mueve el temporal a su nombre definitivo.
func (st *Staged) Promote() error {
	if err := os.Rename(st.tempPath, st.finalPath); err != nil {
		return fmt.Errorf("uploads: promote: %w", err)
	}
	return nil
}

// Discard borra el temporal. Best effort.
func (st *Staged) Discard() {
	os.Remove(st.tempPath)
}

// Remove borra una foto ya promovida a partir de su URL pública.
// Best effort: se llama después del commit, un fallo solo deja un
// archivo huérfano.
func (s *Store) Remove(photoURL string) {
	name := strings.TrimPrefix(photoURL, "/uploads/")
	if name == "" || name == photoURL {
		return
	}
	// el nombre viene de la DB pero igual no se sale del dir
	name = filepath.Base(name)
	os.Remove(filepath.Join(s.dir, name))
}

// sanitizeName deja solo caracteres seguros para nombre de archivo.
func sanitizeName(filename string) string {
	base := filepath.Base(filename)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
