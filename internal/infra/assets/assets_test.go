package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	set, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(set.HTML, "{{invoiceNumber}}") {
		t.Fatalf("expected default template to carry placeholders")
	}
	if !strings.Contains(string(set.CSS), ".calendar") {
		t.Fatalf("expected default stylesheet")
	}
	if set.Path != "builtin:invoice.html" {
		t.Fatalf("expected builtin path, got %q", set.Path)
	}
}

func TestLoadFromDirWithFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TemplateFile), []byte("<p>{{clientName}}</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.HTML != "<p>{{clientName}}</p>" {
		t.Fatalf("expected workspace template, got %q", set.HTML)
	}
	if set.Path != filepath.Join(dir, TemplateFile) {
		t.Fatalf("expected workspace path, got %q", set.Path)
	}
	if !strings.Contains(string(set.CSS), ".calendar") {
		t.Fatalf("expected stylesheet to fall back to default")
	}
}
