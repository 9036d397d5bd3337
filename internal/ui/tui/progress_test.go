package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgressModel_StepsAndDone(t *testing.T) {
	var m tea.Model = newProgressModel("Generating")

	m, _ = m.Update(stepMsg("rendering PDF"))
	if !strings.Contains(m.View(), "rendering PDF") {
		t.Fatalf("expected step in view, got %q", m.View())
	}

	m, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view once done, got %q", m.View())
	}
}

func TestRunWithProgress_NonInteractiveRunsWork(t *testing.T) {
	var out bytes.Buffer
	var steps int

	err := RunWithProgress(context.Background(), &out, "x", nil, func(_ context.Context, step StepFunc) error {
		step("one")
		steps++
		return errors.New("work failed")
	})
	if err == nil || err.Error() != "work failed" {
		t.Fatalf("expected work error, got %v", err)
	}
	if steps != 1 || out.Len() != 0 {
		t.Fatalf("expected work to run without drawing (steps=%d, out=%q)", steps, out.String())
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("abcdef", 3); got != "abc…" {
		t.Fatalf("got %q", got)
	}
	if got := clampString("ab", 3); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
