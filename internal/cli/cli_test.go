package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if code, _, stderr := runCLI(t, "init", root); code != exitOK {
		t.Fatalf("init exit=%d stderr=%s", code, stderr)
	}
	return root
}

func TestInit_ScaffoldsWorkspace(t *testing.T) {
	root := initWorkspace(t)

	for _, p := range []string{"invoicer.yaml", "config.yaml", "templates/invoice.html", "templates/style.css"} {
		if _, err := os.Stat(filepath.Join(root, p)); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
}

func TestGenerate_NativeRendererWritesArtifacts(t *testing.T) {
	root := initWorkspace(t)

	code, stdout, stderr := runCLI(t, "-w", root, "--renderer", "native", "2024", "3", "acme")
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr)
	}

	dist := filepath.Join(root, "dist")
	pdfPath := filepath.Join(dist, "invoice-ACME-202403-01.pdf")

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a PDF file")
	}

	html, err := os.ReadFile(filepath.Join(dist, "index.html"))
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	if strings.Contains(string(html), "{{") {
		t.Fatalf("unresolved placeholder left in index.html")
	}
	if !strings.Contains(string(html), "ACME-202403-01") {
		t.Fatalf("expected invoice number in html")
	}

	css, _ := os.ReadFile(filepath.Join(dist, "style.css"))
	tplCSS, _ := os.ReadFile(filepath.Join(root, "templates", "style.css"))
	if !bytes.Equal(css, tplCSS) {
		t.Fatalf("expected style.css copied verbatim")
	}

	if !strings.Contains(stdout, "PDF generated: "+pdfPath) || !strings.Contains(stdout, "HTML saved: ") {
		t.Fatalf("expected artifact paths in output, got:\n%s", stdout)
	}

	if _, err := os.Stat(filepath.Join(root, ".invoicer", "logs", "invoicer.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestGenerate_MissingArgsIsUsageError(t *testing.T) {
	root := t.TempDir()

	code, _, stderr := runCLI(t, "-w", root, "2024", "3")
	if code != exitUsage {
		t.Fatalf("expected exit %d, got %d", exitUsage, code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Fatalf("expected usage on stderr, got:\n%s", stderr)
	}
}

func TestGenerate_UnknownClient(t *testing.T) {
	root := initWorkspace(t)

	code, stdout, stderr := runCLI(t, "-w", root, "--renderer", "native", "2024", "3", "initech")
	if code != exitError {
		t.Fatalf("expected exit %d, got %d", exitError, code)
	}
	if !strings.Contains(stderr, `client with key "initech" not found in config`) {
		t.Fatalf("expected descriptive error, got:\n%s", stderr)
	}
	if stdout != "" {
		t.Fatalf("expected nothing on stdout, got:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "dist", "index.html")); !os.IsNotExist(err) {
		t.Fatalf("expected no artifacts after failure")
	}
}

func TestGenerate_InvalidMonth(t *testing.T) {
	root := initWorkspace(t)

	code, _, stderr := runCLI(t, "-w", root, "2024", "13", "acme")
	if code != exitError {
		t.Fatalf("expected exit %d, got %d", exitError, code)
	}
	if !strings.Contains(stderr, "out of range") {
		t.Fatalf("expected month error, got:\n%s", stderr)
	}
}

func TestTimesheet_PrintsTotal(t *testing.T) {
	root := t.TempDir()

	code, stdout, stderr := runCLI(t, "-w", root, "timesheet", "2024", "2")
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr)
	}
	if !strings.Contains(stdout, "February 2024") || !strings.Contains(stdout, "Total hours: 168") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestTimesheet_OverridesAndIgnored(t *testing.T) {
	root := t.TempDir()

	code, stdout, _ := runCLI(t, "-w", root, "timesheet", "2024", "1", "2024-01-15:4,2024-01-16:0,2024-02-01:2")
	if code != exitOK {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(stdout, "Total hours: 172") {
		t.Fatalf("expected overridden total, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "2024-02-01") {
		t.Fatalf("expected ignored override listed, got:\n%s", stdout)
	}
}

func TestTimesheet_WrongArgCount(t *testing.T) {
	code, _, _ := runCLI(t, "timesheet", "2024")
	if code != exitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
}

func TestClients_ListsConfiguredClients(t *testing.T) {
	root := initWorkspace(t)

	code, stdout, stderr := runCLI(t, "-w", root, "clients")
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr)
	}
	for _, want := range []string{"acme", "ACME Corporation", "€50.00"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestValidate_Workspace(t *testing.T) {
	root := initWorkspace(t)

	code, stdout, stderr := runCLI(t, "-w", root, "validate")
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%s", code, stderr)
	}
	if !strings.Contains(stdout, "OK") || !strings.Contains(stdout, "Clients:  1") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}

	tpl := filepath.Join(root, "templates", "invoice.html")
	if err := os.WriteFile(tpl, []byte("<p>{{invoiceNumbr}}</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr = runCLI(t, "-w", root, "validate")
	if code != exitError || !strings.Contains(stderr, "invoiceNumbr") {
		t.Fatalf("expected template error (exit=%d):\n%s", code, stderr)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != exitOK || !strings.HasPrefix(stdout, "invoicer dev") {
		t.Fatalf("unexpected version output (exit=%d): %q", code, stdout)
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	code, _, stderr := runCLI(t, "--nope")
	if code != exitUsage {
		t.Fatalf("expected usage exit, got %d (stderr=%s)", code, stderr)
	}
}

func TestGenerate_TooManyArgsIsUsageError(t *testing.T) {
	root := t.TempDir()

	code, _, stderr := runCLI(t, "-w", root, "2024", "3", "acme", "1", "", "Design:10", "extra")
	if code != exitUsage {
		t.Fatalf("expected exit %d, got %d (stderr=%s)", exitUsage, code, stderr)
	}
}
