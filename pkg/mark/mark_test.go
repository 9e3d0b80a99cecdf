package mark

import "testing"

func TestForAlias(t *testing.T) {
	cases := map[string]Mark{
		"b":         Bold,
		"Bold":      Bold,
		"em":        Italic,
		"u":         Underline,
		"hl":        Highlight,
		"highlight": Highlight,
	}
	for input, want := range cases {
		got, err := ForAlias(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("expected %s for %q, got %s", want, input, got)
		}
	}
}

func TestForAliasUnknown(t *testing.T) {
	if _, err := ForAlias("blink"); err == nil {
		t.Fatalf("expected error for unknown mark")
	}
}

func TestANSIPassThroughUnknown(t *testing.T) {
	if got := Mark("strike").ANSI("x"); got != "x" {
		t.Fatalf("unknown mark should pass text through, got %q", got)
	}
}
