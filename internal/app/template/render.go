package template

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/invoicer/internal/domain"
)

// RenderString replaces {{VAR}} placeholders with vars values in a single
// left-to-right pass; substituted values are not scanned again.
// It returns an error if a variable is unknown or a placeholder is malformed.
func RenderString(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	out.Grow(len(input))
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", placeholderErr("unclosed template expression")
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", placeholderErr("empty template expression")
		}

		value, ok := vars[key]
		if !ok {
			return "", placeholderErr(fmt.Sprintf("unknown placeholder %q", key))
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

func placeholderErr(msg string) error {
	return &domain.OpError{
		Op:   "template.render",
		Kind: domain.KindConfig,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrBadPlaceholder),
	}
}

// Scan lists the placeholder names of input in order of first use. It
// fails on the same malformed expressions RenderString rejects.
func Scan(input string) ([]string, error) {
	var names []string
	seen := map[string]bool{}

	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			return names, nil
		}
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return nil, placeholderErr("unclosed template expression")
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return nil, placeholderErr("empty template expression")
		}
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
		rest = rest[end+2:]
	}
}
