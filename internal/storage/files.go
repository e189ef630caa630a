// Package storage validates and stores uploaded media files. Files
// are written under a configurable root with random names; the
// returned relative path is what gets persisted on the owning row.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind selects the validation rules and target directory for an upload.
type Kind string

const (
	KindPoster   Kind = "posters"
	KindTrailer  Kind = "trailers"
	KindEpisode  Kind = "episodes"
	KindSubtitle Kind = "subtitles"
)

const mib = 1 << 20

// rule holds the accepted extensions and the size ceiling for a Kind.
type rule struct {
	exts    []string
	maxSize int64
}

var rules = map[Kind]rule{
	KindPoster:   {exts: []string{".jpg", ".jpeg", ".png"}, maxSize: 5 * mib},
	KindTrailer:  {exts: []string{".mp4", ".mov"}, maxSize: 100 * mib},
	KindEpisode:  {exts: []string{".mp4", ".mov"}, maxSize: 100 * mib},
	KindSubtitle: {exts: []string{".srt", ".vtt"}, maxSize: 10 * mib},
}

// Validate checks an upload's extension and size against the rules
// for its kind. The returned error message is safe to surface to the
// client in a 400 response.
func Validate(kind Kind, filename string, size int64) error {
	r, ok := rules[kind]
	if !ok {
		return fmt.Errorf("unknown upload kind %q", kind)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range r.exts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("file extension %q not allowed, expected one of %s", ext, strings.Join(r.exts, ", "))
	}
	if size > r.maxSize {
		return fmt.Errorf("file exceeds the %d MB limit for %s", r.maxSize/mib, kind)
	}
	return nil
}

// FileStore writes uploads to the local filesystem under Root.
type FileStore struct {
	Root string
}

func NewFileStore(root string) *FileStore { return &FileStore{Root: root} }

// Save streams src into a randomly named file for the given kind and
// returns the path relative to Root. The original filename only
// contributes its extension; everything else is discarded so
// uploads can never collide or traverse directories.
func (s *FileStore) Save(kind Kind, origName string, src io.Reader) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate filename: %w", err)
	}
	name := hex.EncodeToString(buf) + strings.ToLower(filepath.Ext(origName))

	dir := filepath.Join(s.Root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return filepath.Join(string(kind), name), nil
}
