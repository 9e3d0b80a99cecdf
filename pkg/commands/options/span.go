package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/richtext"
)

// SpanOptions address a stretch of a document by rune offsets.
type SpanOptions struct {
	From int
	To   int
}

func AddSpanArgs(cmd *cobra.Command, o *SpanOptions) {
	cmd.Flags().IntVar(&o.From, "from", -1,
		"Start of the text range, in characters.")
	cmd.Flags().IntVar(&o.To, "to", -1,
		"End of the text range, in characters (exclusive).")
}

// HasRange reports whether both ends were given.
func (o *SpanOptions) HasRange() bool {
	return o.From >= 0 && o.To >= 0
}

// Selection returns the addressed range, or a caret at --from when --to is
// absent, or a caret at end when neither flag was given.
func (o *SpanOptions) Selection(docLen int) richtext.Selection {
	if o.HasRange() {
		return richtext.Range(o.From, o.To)
	}
	if o.From >= 0 {
		return richtext.Caret(o.From)
	}
	return richtext.Caret(docLen)
}
