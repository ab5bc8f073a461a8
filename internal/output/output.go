// Package output renders fetched data for the terminal: aligned tables,
// key/value cards and colored status lines. It never talks to the network.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// Out and Err are where rendering goes. Tests replace them.
var (
	Out io.Writer = color.Output
	Err io.Writer = color.Error
)

var (
	headerColor  = color.New(color.Bold, color.FgCyan)
	keyColor     = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Table prints rows under headers, followed by a dashes line, aligned with
// a tabwriter.
func Table(headers []string, rows [][]string) {
	fmt.Fprint(Out, FormatTable(headers, rows))
}

// FormatTable is Table rendered to a string, for the console.
func FormatTable(headers []string, rows [][]string) string {
	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len([]rune(h)))
	}
	fmt.Fprintln(w, strings.Join(dashes, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
	return buf.String()
}

func Header(title string) {
	headerColor.Fprintln(Out, title)
}

// KeyValue prints one aligned "key: value" line of a card.
func KeyValue(key string, value any) {
	fmt.Fprintf(Out, "  %s %v\n", keyColor.Sprintf("%-22s", key+":"), value)
}

func Success(format string, args ...any) {
	successColor.Fprintf(Out, "✓ "+format+"\n", args...)
}

func Warning(format string, args ...any) {
	warnColor.Fprintf(Err, "! "+format+"\n", args...)
}

// Error prints an inline failure line; it does not exit.
func Error(format string, args ...any) {
	errorColor.Fprintf(Err, "Error: "+format+"\n", args...)
}

// JSON writes v indented, the shape every --json flag produces.
func JSON(v any) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
