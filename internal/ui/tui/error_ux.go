package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/invoicer/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// UserMessage condenses err into a one-line hint for the terminal. The full
// error still goes to the log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return "Unexpected error (see logs)"
	}

	switch oe.Kind {
	case domain.KindUsage:
		return "Missing or invalid arguments"

	case domain.KindNotFound:
		if strings.Contains(oe.Op, "workspacefinder") {
			return "Workspace not found (tip: run `invoicer init`)"
		}
		if oe.Path != "" {
			return "File not found: " + filepath.Base(oe.Path)
		}
		return "Not found"

	case domain.KindValidation:
		return "Invalid input"

	case domain.KindConfig:
		if errors.Is(err, domain.ErrUnknownClient) {
			return "Unknown client (see `invoicer clients`)"
		}
		if errors.Is(err, domain.ErrBadPlaceholder) {
			return "Invalid template placeholder"
		}

		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if looksLikeYAMLProblem(err.Error()) {
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			return "Invalid YAML at " + base
		}
		return "Invalid config in " + base

	case domain.KindRender:
		return "PDF rendering failed (try --renderer native)"

	case domain.KindPublish:
		return "Upload failed; local files were kept"

	default:
		return "Unexpected error (see logs)"
	}
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
