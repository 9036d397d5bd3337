package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureGitignore_CreatesFile(t *testing.T) {
	tmp := t.TempDir()

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}

	for _, w := range []string{"# invoicer", "dist/", ".invoicer/", ".env"} {
		if !strings.Contains(string(b), w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, b)
		}
	}
}

func TestEnsureGitignore_AppendsMissingEntries(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")

	existing := "node_modules/\n# invoicer\ndist/"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	s := string(b)

	if !strings.HasPrefix(s, "node_modules/\n") {
		t.Fatalf("expected existing content preserved, got:\n%s", s)
	}
	if strings.Count(s, "# invoicer") != 1 || strings.Count(s, "dist/") != 1 {
		t.Fatalf("expected no duplicated entries, got:\n%s", s)
	}
	if !strings.Contains(s, ".invoicer/\n.env\n") {
		t.Fatalf("expected missing entries appended, got:\n%s", s)
	}

	// A second run is a no-op.
	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("second ensureGitignore: %v", err)
	}
	again, _ := os.ReadFile(path)
	if string(again) != s {
		t.Fatalf("expected idempotent update, got:\n%s", again)
	}
}
