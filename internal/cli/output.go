package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/multivar/internal/presentation/tui"
	"golang.org/x/term"
)

// Output formats accepted by --output.
const (
	OutputAuto     = "auto"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

// ResolveOutput turns "auto" into markdown on a terminal and JSON otherwise.
func ResolveOutput(format string, out io.Writer) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", OutputAuto:
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return OutputMarkdown, nil
		}
		return OutputJSON, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputMarkdown, "md":
		return OutputMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q: want auto, json or markdown", format)
}

// Print writes an operation result in the given (resolved) format.
func Print(out io.Writer, format, op string, result any) error {
	if format != OutputMarkdown {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	rendered, err := tui.NewRenderer(terminalWidth(out))(tui.Report(op, result))
	if err != nil {
		return fmt.Errorf("render %s: %w", op, err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
