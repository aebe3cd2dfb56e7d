package blob

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"My Resume (final).pdf", "MyResumefinal.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.exe", "evil.exe"},
		{"résumé.pdf", "rsum.pdf"},
		{"...", "file"},
		{"", "file"},
		{"a/b/c.txt", "c.txt"},
	}
	for _, c := range cases {
		if got := SanitizeName(c.in); got != c.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSave_WritesFileAndReturnsRef(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ref, err := s.Save([]byte("pdf bytes"), "resume.pdf")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(ref, "_resume.pdf") {
		t.Errorf("ref %q does not keep the sanitized suffix", ref)
	}
	if strings.ContainsAny(ref, "/\\") {
		t.Errorf("ref %q contains path separators", ref)
	}
	path, err := s.Open(ref)
	if err != nil {
		t.Fatalf("Open(%q): %v", ref, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("stored bytes = %q, want %q", data, "pdf bytes")
	}
}

func TestSave_SameSuggestedNameDoesNotCollide(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a, err := s.Save([]byte("first"), "resume.pdf")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := s.Save([]byte("second"), "resume.pdf")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a == b {
		t.Errorf("two saves of %q produced the same reference %q", "resume.pdf", a)
	}
}

func TestSave_TraversalNameStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "store"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ref, err := s.Save([]byte("x"), "../../escape.txt")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(ref, "..") {
		t.Errorf("ref %q still contains traversal components", ref)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); !os.IsNotExist(err) {
		t.Error("file escaped the store directory")
	}
}
