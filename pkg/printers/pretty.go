// Package printers renders journal entries for the terminal.
package printers

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/mark"
	"tableflip.dev/daybook/pkg/timeutil"
)

const previewWidth = 48

// PrettyPrint writes entry listings and documents to stdout.
type PrettyPrint struct {
	// Plain suppresses ANSI styling regardless of terminal capabilities.
	Plain bool
}

func (pp *PrettyPrint) styled() bool {
	if pp.Plain {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// Title prints a bold underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Entries prints one row per entry: date, tags, last modified, preview.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DATE", "TAGS", "UPDATED", "PREVIEW")
	for _, e := range entries {
		tbl.AddRow(e.ID, strings.Join(e.Tags, ","), timeutil.FormatMillis(e.UpdatedAt), preview(e))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Document renders the full entry: heading, tags, then the styled runs.
// Marks map onto terminal attributes; sizes diverging from the default are
// annotated since a terminal cell has only one size.
func (pp *PrettyPrint) Document(e *entry.Entry, wrapWidth int) {
	pp.Title(e.ID)
	if len(e.Tags) > 0 {
		f := color.New(color.Faint)
		_, _ = f.Printf("#%s\n", strings.Join(e.Tags, " #"))
	}
	fmt.Println()

	var b strings.Builder
	for _, r := range e.Content.Runs() {
		if r.Text == "" {
			continue
		}
		text := r.Text
		if pp.styled() {
			for m := range r.Marks {
				text = mark.Mark(m).ANSI(text)
			}
		}
		if r.FontSize != 0 {
			text = fmt.Sprintf("%s[%dpx]", text, r.FontSize)
		}
		b.WriteString(text)
	}
	if wrapWidth <= 0 {
		wrapWidth = 80
	}
	fmt.Println(wordwrap.String(b.String(), wrapWidth))
}

func preview(e *entry.Entry) string {
	text := strings.ReplaceAll(e.Content.PlainText(), "\n", " ")
	runes := []rune(text)
	if len(runes) <= previewWidth {
		return text
	}
	return string(runes[:previewWidth-1]) + "…"
}
