package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aalvaropc/invoicer/internal/domain"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "Unexpected error (see logs)"},
		{"usage", &domain.OpError{Op: "request.parse", Kind: domain.KindUsage, Err: domain.ErrMissingArgs}, "Missing or invalid arguments"},
		{"workspace", &domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindNotFound, Err: domain.ErrNotFound}, "Workspace not found (tip: run `invoicer init`)"},
		{"missing file", &domain.OpError{Op: "config.read", Kind: domain.KindNotFound, Path: "/ws/config.yaml"}, "File not found: config.yaml"},
		{"unknown client", &domain.OpError{Op: "registry.client", Kind: domain.KindConfig, Err: fmt.Errorf("x: %w", domain.ErrUnknownClient)}, "Unknown client (see `invoicer clients`)"},
		{"yaml line", &domain.OpError{Op: "config.parse", Kind: domain.KindConfig, Path: "/ws/config.yaml", Err: errors.New("yaml: line 7: did not find expected key")}, "Invalid YAML at config.yaml line 7"},
		{"render", &domain.OpError{Op: "chromerender.render", Kind: domain.KindRender, Err: domain.ErrRenderFailed}, "PDF rendering failed (try --renderer native)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UserMessage(tc.err); got != tc.want {
				t.Fatalf("UserMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}
