package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		kind     Kind
		filename string
		size     int64
		wantErr  bool
	}{
		{"poster jpg ok", KindPoster, "cover.jpg", 4 * mib, false},
		{"poster png ok", KindPoster, "cover.PNG", 1 * mib, false},
		{"poster too large", KindPoster, "cover.jpg", 5*mib + 1, true},
		{"poster wrong type", KindPoster, "cover.gif", 1 * mib, true},
		{"trailer mp4 ok", KindTrailer, "trailer.mp4", 99 * mib, false},
		{"trailer mov ok", KindTrailer, "trailer.mov", 50 * mib, false},
		{"trailer too large", KindTrailer, "trailer.mp4", 101 * mib, true},
		{"episode mp4 ok", KindEpisode, "e01.mp4", 80 * mib, false},
		{"subtitle srt ok", KindSubtitle, "en.srt", 1 * mib, false},
		{"subtitle vtt ok", KindSubtitle, "en.vtt", 1 * mib, false},
		{"subtitle too large", KindSubtitle, "en.srt", 11 * mib, true},
		{"subtitle wrong type", KindSubtitle, "en.txt", 1 * mib, true},
		{"no extension", KindPoster, "cover", 1 * mib, true},
		{"unknown kind", Kind("banners"), "a.jpg", 1 * mib, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.kind, tc.filename, tc.size)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate(%q, %q, %d) error = %v, wantErr %v", tc.kind, tc.filename, tc.size, err, tc.wantErr)
			}
		})
	}
}

func TestSave(t *testing.T) {
	s := NewFileStore(t.TempDir())

	rel, err := s.Save(KindPoster, "../../etc/passwd.jpg", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Only the extension survives from the client name.
	if filepath.Dir(rel) != string(KindPoster) {
		t.Errorf("stored under %q, want %q", filepath.Dir(rel), KindPoster)
	}
	base := filepath.Base(rel)
	if !strings.HasSuffix(base, ".jpg") {
		t.Errorf("stored name %q does not keep extension", base)
	}
	if strings.Contains(rel, "..") || strings.Contains(base, "passwd") {
		t.Errorf("stored name %q leaks the client filename", rel)
	}

	data, err := os.ReadFile(filepath.Join(s.Root, rel))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("read back %q", data)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	s := NewFileStore(t.TempDir())
	a, err := s.Save(KindSubtitle, "en.srt", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := s.Save(KindSubtitle, "en.srt", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a == b {
		t.Errorf("two uploads of the same name collided at %q", a)
	}
}
