// Package media decodes base64 data-URI images sent by API clients and
// stores them on the local filesystem under a configurable media root.
package media

import (
	"encoding/base64"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrInvalidImage is returned when the payload is not a base64 image data URI
// or the decoded bytes are not a raster image.
var ErrInvalidImage = errors.New("invalid image")

const dataURIPrefix = "data:image/"

// rasterTypes are the accepted upload types. Vector formats such as SVG can
// carry script and are refused.
var rasterTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// DecodeDataURI decodes "data:image/<type>;base64,<payload>" and returns the
// raw bytes with the file extension of the detected content type (".png").
// The declared type is not trusted; the bytes are sniffed.
func DecodeDataURI(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, dataURIPrefix) {
		return nil, "", ErrInvalidImage
	}
	header, payload, ok := strings.Cut(s, ";base64,")
	if !ok || len(header) <= len(dataURIPrefix) || payload == "" {
		return nil, "", ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients strip padding.
		if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
			return nil, "", ErrInvalidImage
		}
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), rasterTypes...) {
		return nil, "", ErrInvalidImage
	}
	return data, mt.Extension(), nil
}

// Store writes images below Root and exposes them under URLPrefix.
type Store struct {
	Root      string
	URLPrefix string
}

// NewStore returns a Store rooted at root. urlPrefix is normalized to a
// leading slash without a trailing one.
func NewStore(root, urlPrefix string) *Store {
	p := "/" + strings.Trim(strings.TrimSpace(urlPrefix), "/")
	return &Store{Root: root, URLPrefix: p}
}

// SaveImage decodes dataURI and writes it to <Root>/<folder>/<uuid><ext>.
// It returns the slash-separated path relative to Root.
func (s *Store) SaveImage(folder, dataURI string) (string, error) {
	data, ext, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.Root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}
	return path.Join(folder, name), nil
}

// Remove deletes a previously saved file. Missing files and empty paths are
// not errors. Paths escaping Root are refused.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean("/" + rel)[1:]
	if clean == "" || clean != rel {
		return ErrInvalidImage
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// URL returns the public URL of a stored file, or "" for an empty path.
func (s *Store) URL(rel string) string {
	if rel == "" {
		return ""
	}
	if s.URLPrefix == "/" {
		return "/" + rel
	}
	return s.URLPrefix + "/" + rel
}
