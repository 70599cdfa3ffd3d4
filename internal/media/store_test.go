package media

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// 1x1 transparent PNG.
const pngB64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

const pngURI = "data:image/png;base64," + pngB64

const svgDoc = `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.cookie)</script></svg>`

func TestDecodeDataURI_PNG(t *testing.T) {
	data, ext, err := DecodeDataURI(pngURI)
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	if ext != ".png" {
		t.Fatalf("ext = %q; want .png", ext)
	}
	if len(data) == 0 {
		t.Fatalf("expected bytes")
	}
}

func TestDecodeDataURI_SniffsRealType(t *testing.T) {
	// Declared jpeg, actually png.
	_, ext, err := DecodeDataURI("data:image/jpeg;base64," + pngB64)
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	if ext != ".png" {
		t.Fatalf("ext = %q; want .png", ext)
	}
}

func TestDecodeDataURI_GIF(t *testing.T) {
	const gif = "R0lGODlhAQABAIAAAP///wAAACH5BAEAAAAALAAAAAABAAEAAAICRAEAOw=="
	_, ext, err := DecodeDataURI("data:image/gif;base64," + gif)
	if err != nil || ext != ".gif" {
		t.Fatalf("ext = %q, err = %v; want .gif", ext, err)
	}
}

func TestDecodeDataURI_Unpadded(t *testing.T) {
	if _, _, err := DecodeDataURI("data:image/png;base64," + strings.TrimRight(pngB64, "=")); err != nil {
		t.Fatalf("unpadded payload rejected: %v", err)
	}
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	for name, in := range map[string]string{
		"empty":        "",
		"no prefix":    pngB64,
		"not image":    "data:text/plain;base64,aGVsbG8=",
		"no base64":    "data:image/png," + pngB64,
		"bad payload":  "data:image/png;base64,***",
		"text bytes":   "data:image/png;base64,aGVsbG8gd29ybGQ=",
		"no subtype":   "data:image/;base64," + pngB64,
		"svg":          "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(svgDoc)),
		"svg declared": "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgDoc)),
	} {
		if _, _, err := DecodeDataURI(in); !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("%s: err = %v; want ErrInvalidImage", name, err)
		}
	}
}

func TestStore_SaveRemoveURL(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, "media/")
	if s.URLPrefix != "/media" {
		t.Fatalf("URLPrefix = %q", s.URLPrefix)
	}

	rel, err := s.SaveImage("recipes", pngURI)
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if !strings.HasPrefix(rel, "recipes/") || !strings.HasSuffix(rel, ".png") {
		t.Fatalf("unexpected relative path %q", rel)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if got := s.URL(rel); got != "/media/"+rel {
		t.Fatalf("URL = %q", got)
	}

	if err := s.Remove(rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	// Idempotent.
	if err := s.Remove(rel); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestStore_SaveImage_Invalid(t *testing.T) {
	s := NewStore(t.TempDir(), "/media")
	if _, err := s.SaveImage("avatars", "nope"); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("err = %v; want ErrInvalidImage", err)
	}
}

func TestStore_RemoveRefusesTraversal(t *testing.T) {
	s := NewStore(t.TempDir(), "/media")
	if err := s.Remove("../etc/passwd"); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("err = %v; want ErrInvalidImage", err)
	}
	if err := s.Remove(""); err != nil {
		t.Fatalf("empty path should be a no-op: %v", err)
	}
	if s.URL("") != "" {
		t.Fatalf("URL(\"\") should be empty")
	}
}
