// Package pager routes encoded output to stdout or, on an interactive
// terminal, through an external pager with format-aware colorizing for
// JSON and YAML.
package pager

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"

	"github.com/hash-d/jmes/internal/format"
)

// Router decides between direct output and paging. Paged output is
// written to a temp file and the pager is handed the path; the file is
// removed once the pager exits, whatever its exit status.
type Router struct {
	// Pager is the pager command line. Empty falls back to $PAGER,
	// then "less -R".
	Pager string
	// Theme is the chroma style for colorized output.
	Theme string
	// Paging enables the pager when stdout is a terminal.
	Paging bool
	// Stdout is the destination stream, normally os.Stdout.
	Stdout *os.File
}

// Write sends the encoded text to its destination. Output that is
// piped (stdout not a terminal) is written verbatim so downstream
// tools never see ANSI codes or pager chrome.
func (r *Router) Write(text string, f format.Format) error {
	if !r.Paging || !term.IsTerminal(int(r.Stdout.Fd())) {
		_, err := io.WriteString(r.Stdout, text)
		return err
	}
	display := text
	if lang := colorLang(f); lang != "" {
		var buf strings.Builder
		// Colorizing is cosmetic: on any highlight failure, page the
		// plain text instead.
		if err := quick.Highlight(&buf, text, lang, "terminal256", r.Theme); err == nil {
			display = buf.String()
		}
	}
	return r.page(display)
}

// colorLang maps an output format to a chroma lexer name; only JSON
// and YAML get the colorizing pipeline.
func colorLang(f format.Format) string {
	switch f {
	case format.JSON:
		return "json"
	case format.YAML:
		return "yaml"
	default:
		return ""
	}
}

func (r *Router) page(text string) error {
	tmp, err := os.CreateTemp("", "jmes-*")
	if err != nil {
		return fmt.Errorf("create pager buffer: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("write pager buffer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write pager buffer: %w", err)
	}

	argv := pagerCommand(r.Pager)
	cmd := exec.Command(argv[0], append(argv[1:], tmp.Name())...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pager %s: %w", argv[0], err)
	}
	return nil
}

func pagerCommand(configured string) []string {
	for _, cmdline := range []string{configured, os.Getenv("PAGER")} {
		if argv := strings.Fields(cmdline); len(argv) > 0 {
			return argv
		}
	}
	return []string{"less", "-R"}
}
