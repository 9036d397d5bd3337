package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// StepFunc reports the pipeline step that is about to start.
type StepFunc func(step string)

type stepMsg string

type doneMsg struct{}

type progressModel struct {
	theme   Theme
	spinner spinner.Model
	title   string
	step    string
	done    bool
}

func newProgressModel(title string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	t := DefaultTheme()
	s.Style = t.Accent
	return progressModel{theme: t, spinner: s, title: title}
}

func (m progressModel) Init() tea.Cmd { return m.spinner.Tick }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.step = string(msg)
		return m, nil
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	line := m.spinner.View() + " " + m.theme.Title.Render(m.title)
	if m.step != "" {
		line += " " + m.theme.Subtitle.Render(clampString(m.step, 60))
	}
	return line + "\n"
}

// Interactive reports whether w is a terminal a spinner can draw on.
func Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RunWithProgress runs work while a spinner on out shows its latest step.
// When out is not a terminal, work runs without any drawing.
func RunWithProgress(ctx context.Context, out io.Writer, title string, log *slog.Logger, work func(ctx context.Context, step StepFunc) error) error {
	if !Interactive(out) {
		return work(ctx, func(string) {})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(wrapSafe(newProgressModel(title), log),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)

	finished := make(chan error, 1)
	go func() {
		err := work(ctx, func(s string) { p.Send(stepMsg(s)) })
		finished <- err
		p.Send(doneMsg{})
	}()

	_, runErr := p.Run()
	if runErr != nil {
		// Interrupted: stop the work and wait for it to unwind.
		cancel()
	}

	if err := <-finished; err != nil {
		return err
	}
	return runErr
}

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}
